package ports

import (
	"context"
	"time"
)

// AdminSession is issued by a successful admin login.
type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// AdminService guards the administrative endpoints with the shared secret.
type AdminService interface {
	Login(ctx context.Context, password string) (*AdminSession, error)
	// Authorize accepts the raw secret or a token issued by Login.
	Authorize(credential string) error
}
