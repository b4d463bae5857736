package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"watch-party-backend/internal/database"
	"watch-party-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("catalog repository: not found")

// MovieUpdates carries a partial update; empty fields are left unchanged.
// UpdatedAt is always written.
type MovieUpdates struct {
	Title       string
	Description string
	CoverURL    string
	UpdatedAt   string
}

type Repository interface {
	GetMovie(ctx context.Context, movieID string) (model.MovieItem, error)
	ListMovies(ctx context.Context, limit int) ([]model.MovieItem, error)
	PutMovie(ctx context.Context, movie model.MovieItem) error
	UpdateMovie(ctx context.Context, movieID string, updates MovieUpdates) (model.MovieItem, error)
	DeleteMovie(ctx context.Context, movieID string) error
	GetEpisode(ctx context.Context, movieID string, episodeNumber int) (model.EpisodeItem, error)
	ListEpisodes(ctx context.Context, movieID string) ([]model.EpisodeItem, error)
	PutEpisode(ctx context.Context, episode model.EpisodeItem) error
	DeleteEpisode(ctx context.Context, movieID string, episodeNumber int) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func movieKey(movieID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"movieId": &types.AttributeValueMemberS{Value: movieID},
	}
}

func episodeKey(movieID string, episodeNumber int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"movieId":       &types.AttributeValueMemberS{Value: movieID},
		"episodeNumber": &types.AttributeValueMemberN{Value: strconv.Itoa(episodeNumber)},
	}
}

func (r *DynamoRepository) GetMovie(ctx context.Context, movieID string) (model.MovieItem, error) {
	var movie model.MovieItem
	err := r.db.Client.GetItem(ctx, model.MoviesTable, movieKey(movieID), &movie)
	if err != nil {
		if isNotFound(err) {
			return model.MovieItem{}, ErrNotFound
		}
		return model.MovieItem{}, err
	}
	return movie, nil
}

func (r *DynamoRepository) ListMovies(ctx context.Context, limit int) ([]model.MovieItem, error) {
	res, err := r.db.Client.ScanPaginated(ctx, model.MoviesTable, limit, nil)
	if err != nil {
		return nil, err
	}

	movies := make([]model.MovieItem, 0, len(res.Items))
	if err := attributevalue.UnmarshalListOfMaps(res.Items, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *DynamoRepository) PutMovie(ctx context.Context, movie model.MovieItem) error {
	return r.db.Client.PutItem(ctx, model.MoviesTable, movie)
}

func (r *DynamoRepository) UpdateMovie(ctx context.Context, movieID string, updates MovieUpdates) (model.MovieItem, error) {
	set := []string{"#updatedAt = :updatedAt"}
	names := map[string]string{"#updatedAt": "updatedAt"}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: updates.UpdatedAt},
	}
	if updates.Title != "" {
		set = append(set, "#title = :title")
		names["#title"] = "title"
		values[":title"] = &types.AttributeValueMemberS{Value: updates.Title}
	}
	if updates.Description != "" {
		set = append(set, "#description = :description")
		names["#description"] = "description"
		values[":description"] = &types.AttributeValueMemberS{Value: updates.Description}
	}
	if updates.CoverURL != "" {
		set = append(set, "#coverUrl = :coverUrl")
		names["#coverUrl"] = "coverUrl"
		values[":coverUrl"] = &types.AttributeValueMemberS{Value: updates.CoverURL}
	}

	var movie model.MovieItem
	expr := "SET " + strings.Join(set, ", ")
	if err := r.db.Client.UpdateItem(ctx, model.MoviesTable, movieKey(movieID), expr, values, names, &movie); err != nil {
		return model.MovieItem{}, err
	}
	return movie, nil
}

func (r *DynamoRepository) DeleteMovie(ctx context.Context, movieID string) error {
	return r.db.Client.DeleteItem(ctx, model.MoviesTable, movieKey(movieID))
}

func (r *DynamoRepository) GetEpisode(ctx context.Context, movieID string, episodeNumber int) (model.EpisodeItem, error) {
	var episode model.EpisodeItem
	err := r.db.Client.GetItem(ctx, model.EpisodesTable, episodeKey(movieID, episodeNumber), &episode)
	if err != nil {
		if isNotFound(err) {
			return model.EpisodeItem{}, ErrNotFound
		}
		return model.EpisodeItem{}, err
	}
	return episode, nil
}

func (r *DynamoRepository) ListEpisodes(ctx context.Context, movieID string) ([]model.EpisodeItem, error) {
	items, err := r.db.Client.QueryAll(
		ctx,
		model.EpisodesTable,
		nil,
		"movieId = :movieId",
		map[string]types.AttributeValue{
			":movieId": &types.AttributeValueMemberS{Value: movieID},
		},
	)
	if err != nil {
		return nil, err
	}

	episodes := make([]model.EpisodeItem, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

func (r *DynamoRepository) PutEpisode(ctx context.Context, episode model.EpisodeItem) error {
	return r.db.Client.PutItem(ctx, model.EpisodesTable, episode)
}

func (r *DynamoRepository) DeleteEpisode(ctx context.Context, movieID string, episodeNumber int) error {
	return r.db.Client.DeleteItem(ctx, model.EpisodesTable, episodeKey(movieID, episodeNumber))
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
