package dto

type OpenPartyRequest struct {
	RoomID  string `json:"roomId"`
	MovieID string `json:"movieId"`
	Episode int    `json:"episode"`
}

type OpenPartyResponse struct {
	RoomID   string `json:"roomId"`
	VideoURL string `json:"videoUrl"`
}
