package services

import (
	"errors"
	"estoque-console/models"
	"estoque-console/utils"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid user or password")

type AuthConfig struct {
	OperatorUser         string
	OperatorPasswordHash string
	JWTSecret            string
	JWTExpiry            time.Duration
}

// AuthService checks the single configured operator credential.
type AuthService struct {
	cfg AuthConfig
	now func() time.Time
}

func NewAuthService(cfg AuthConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

func (s *AuthService) Enabled() bool {
	return s.cfg.OperatorUser != "" && s.cfg.OperatorPasswordHash != ""
}

func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if !s.Enabled() || req.User != s.cfg.OperatorUser {
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(s.cfg.OperatorPasswordHash, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(s.cfg.JWTSecret, req.User, s.cfg.JWTExpiry, s.now())
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Operator:  req.User,
	}, nil
}

func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := utils.ValidateToken(s.cfg.JWTSecret, token)
	if err != nil {
		return "", err
	}
	return claims.Operator, nil
}
