package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// TokenErrorResponse is returned for every token failure so clients can tell
// "log in again" from "refresh" from "re-authenticate".
type TokenErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ValidationErrorResponse struct {
	Code   int                            `json:"code"`
	Status string                         `json:"status"`
	Errors map[string]map[string][]string `json:"errors"`
}
