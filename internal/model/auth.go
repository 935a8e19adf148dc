package model

import "time"

type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

type CsrfResponse struct {
	CsrfToken string `json:"csrf_token"`
}

// UserInfo - signup 응답. password hash는 포함하지 않는다.
type UserInfo struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

// Credential is a stored email / password hash pair.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (c Credential) ToUserInfo() UserInfo {
	return UserInfo{ID: c.ID, Email: c.Email}
}
