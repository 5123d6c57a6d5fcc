package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gym-class-booking/internal/domain"
)

func TestIssueParseRoundtrip(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gym-test"}

	token, err := j.Issue(42, "a@b.c", domain.RoleTrainee)
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UID)
	require.Equal(t, "a@b.c", claims.Email)
	require.Equal(t, domain.RoleTrainee, claims.Role)
	require.Equal(t, "gym-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("secret-a"), Issuer: "gym-test"}
	b := &JWTer{Secret: []byte("secret-b"), Issuer: "gym-test"}

	token, err := a.Issue(1, "a@b.c", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = b.Parse(token)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	a := &JWTer{Secret: []byte("shared"), Issuer: "issuer-a"}
	b := &JWTer{Secret: []byte("shared"), Issuer: "issuer-b"}

	token, err := a.Issue(1, "a@b.c", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = b.Parse(token)
	require.Error(t, err)
}

func TestNoSecretConfigured(t *testing.T) {
	j := &JWTer{Issuer: "gym-test"}

	_, err := j.Issue(1, "a@b.c", domain.RoleTrainee)
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = j.Parse("whatever")
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestParseRejectsGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gym-test"}
	_, err := j.Parse("not.a.token")
	require.Error(t, err)
}
