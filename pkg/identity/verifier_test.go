package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret"
	testProject = "thinkpad-notes-test"
)

func signToken(t *testing.T, secret, project, sub string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iss": "https://securetoken.dev/" + project,
		"aud": project,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	uid, err := v.Verify(context.Background(), signToken(t, testSecret, testProject, "user-a", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "user-a", uid)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	_, err := v.Verify(context.Background(), signToken(t, "other-secret", testProject, "user-a", time.Hour))
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	_, err := v.Verify(context.Background(), signToken(t, testSecret, testProject, "user-a", -time.Minute))
	assert.Error(t, err)
}

func TestVerifyRejectsForeignProject(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	_, err := v.Verify(context.Background(), signToken(t, testSecret, "other-project", "user-a", time.Hour))
	assert.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "https://securetoken.dev/" + testProject,
		"aud": testProject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewTokenVerifier([]byte(testSecret), testProject)

	_, err := v.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}
