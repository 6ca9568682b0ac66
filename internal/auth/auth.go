package auth

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/projet-mariage/wedding-api/internal/config"
)

// TokenDuration is how long an admin session lasts.
const TokenDuration = 8 * time.Hour

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginInput struct {
	Body struct {
		Password string `json:"password" doc:"Admin password"`
	}
}

type LoginOutput struct {
	Body struct {
		Token string `json:"token"`
	}
}

// HandleLogin exchanges the shared admin password for a JWT.
func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input.Body.Password == "" {
		return nil, huma.Error400BadRequest("password is required")
	}
	if h.cfg.AdminPassword == "" || input.Body.Password != h.cfg.AdminPassword {
		return nil, huma.Error401Unauthorized("invalid password")
	}

	token, err := h.GenerateToken()
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to generate token")
	}

	res := &LoginOutput{}
	res.Body.Token = token
	return res, nil
}

func (h *AuthHandler) GenerateToken() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
