package dto

// LoginInput is populated from the form-encoded username/password fields of
// the login request.
type LoginInput struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
