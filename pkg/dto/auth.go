package dto

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginResponse struct {
	TokenResponse
	User    UserResponse `json:"user"`
	Created bool         `json:"created"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
