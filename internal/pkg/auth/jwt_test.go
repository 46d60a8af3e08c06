package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/cart-service/internal/config"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "cart-service"},
		JWT: config.JWTConfig{Secret: secret},
	}
}

func TestServiceTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig("0123456789abcdef0123456789abcdef"))

	token, err := manager.GenerateServiceToken("cron", RoleScheduler, time.Minute)
	require.NoError(t, err)

	claims, err := manager.ValidateRoleToken(token, RoleScheduler)
	require.NoError(t, err)
	assert.Equal(t, "cron", claims.Subject)
	assert.Equal(t, "cart-service", claims.Issuer)
}

func TestValidateRoleTokenRejects(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	manager := NewJWTManager(testConfig(secret))

	wrongRole, err := manager.GenerateServiceToken("cron", "reporter", time.Minute)
	require.NoError(t, err)

	expired, err := manager.GenerateServiceToken("cron", RoleScheduler, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewJWTManager(testConfig("ffffffffffffffffffffffffffffffff")).
		GenerateServiceToken("cron", RoleScheduler, time.Minute)
	require.NoError(t, err)

	untyped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: RoleScheduler}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := map[string]string{
		"wrong role":     wrongRole,
		"expired":        expired,
		"foreign secret": otherSecret,
		"missing type":   untyped,
		"garbage":        "not-a-token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := manager.ValidateRoleToken(token, RoleScheduler)
			assert.Error(t, err)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}
