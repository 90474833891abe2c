package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
)

const adminSubject = "admin"

// AdminService checks the shared admin secret and issues short-lived tokens
// signed with it.
type AdminService struct {
	secret   []byte
	hash     []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAdminService hashes secret once so logins compare against bcrypt.
func NewAdminService(secret string, tokenTTL time.Duration) (*AdminService, error) {
	if secret == "" {
		return nil, fmt.Errorf("admin secret must not be empty")
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	return &AdminService{secret: []byte(secret), hash: hash, tokenTTL: tokenTTL, now: time.Now}, nil
}

func (s *AdminService) Login(_ context.Context, password string) (*ports.AdminSession, error) {
	if password == "" {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	now := s.now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}
	return &ports.AdminSession{Token: token, ExpiresAt: exp}, nil
}

// Authorize accepts the secret itself or an unexpired admin token.
func (s *AdminService) Authorize(credential string) error {
	if credential == "" {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(credential), s.secret) == 1 {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(adminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
