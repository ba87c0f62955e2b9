package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPairResponse is returned by login and registration.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by rotation endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}
