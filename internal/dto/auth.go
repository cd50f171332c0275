package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenDTO struct {
	AccessToken string     `json:"accessToken"`
	TokenType   string     `json:"tokenType"`
	User        UserOutDTO `json:"user"`
}
