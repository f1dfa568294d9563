package dto

type LoginRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// GoogleLoginRequest carries the raw ID token from Google Sign-In; the
// backend verifies it before trusting any claim inside.
type GoogleLoginRequest struct {
	IDToken  string  `json:"id_token" validate:"required"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,min=2,max=50"`
}

type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	Nickname     string `json:"nickname"`
	IsGoogleUser bool   `json:"is_google_user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
