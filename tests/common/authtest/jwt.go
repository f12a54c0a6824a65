//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T, duration time.Duration) *jwt.Service {
	t.Helper()
	if duration == 0 {
		var err error
		duration, err = time.ParseDuration(h.cfg.Duration)
		require.NoError(t, err)
	}
	return jwt.NewService(h.cfg.Secret, duration, h.cfg.Issuer)
}

// Middleware validates tokens signed by this helper.
func (h *JWTHelper) Middleware(t *testing.T) *middleware.AuthMiddleware {
	t.Helper()
	return middleware.NewAuthMiddleware(usecase.NewTokenValidator(h.service(t, 0)))
}

func (h *JWTHelper) GenerateToken(t *testing.T, identity user.Identity) string {
	t.Helper()
	token, err := h.service(t, 0).GenerateToken(identity)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, identity user.Identity) string {
	t.Helper()
	token, err := h.service(t, time.Millisecond).GenerateToken(identity)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

func NewIdentity(role user.Role) user.Identity {
	return user.Identity{
		ID:    uuid.New(),
		Email: string(role) + "@example.com",
		Name:  "Test " + string(role),
		Role:  role,
	}
}
