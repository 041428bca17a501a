package dto

// ResetRequest payload for POST /password-reset/.
type ResetRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest payload for POST /password-reset/updatePassword.
type UpdatePasswordRequest struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}
