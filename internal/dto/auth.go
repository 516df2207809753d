package dto

import "time"

// LoginRequest is the payload for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	OperatorID string    `json:"operatorID"`
	Name       string    `json:"name"`
}
