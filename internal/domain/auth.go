package domain

import "github.com/golang-jwt/jwt/v5"

// Claims é o conteúdo do token emitido no login com a senha compartilhada do painel
type Claims struct {
	Session string `json:"session"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
