package model

import "fmt"

const (
	MoviesTable   = "Movies"
	EpisodesTable = "Episodes"
	UsersTable    = "Users"
)

type MovieItem struct {
	MovieID     string `dynamodbav:"movieId"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description,omitempty"`
	CoverURL    string `dynamodbav:"coverUrl,omitempty"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt,omitempty"`
}

// EpisodeItem is keyed by movieId (partition) and episodeNumber (sort), so a
// single query returns a movie's episodes already ordered.
type EpisodeItem struct {
	MovieID       string `dynamodbav:"movieId"`
	EpisodeNumber int    `dynamodbav:"episodeNumber"`
	Title         string `dynamodbav:"title,omitempty"`
	VideoURL      string `dynamodbav:"videoUrl"`
	DurationSec   int    `dynamodbav:"durationSec,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt"`
}

type UserItem struct {
	UserID       string `dynamodbav:"userId"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	Role         string `dynamodbav:"role"`
	Status       string `dynamodbav:"status"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

func EpisodePK(movieID string, episodeNumber int) string {
	return fmt.Sprintf("%s#%d", movieID, episodeNumber)
}
