package jwt

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type User struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
