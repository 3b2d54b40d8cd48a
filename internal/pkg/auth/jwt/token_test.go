package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

func TestIssueAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one")
	verifier := NewTokenService("secret-two")

	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))
}

func TestValidateMalformed(t *testing.T) {
	tokens := NewTokenService("test-secret")

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Validate(garbage)
		require.Error(t, err, "input %q must not validate", garbage)
		assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))
	}
}

func TestValidateExpired(t *testing.T) {
	expiring := &TokenService{secret: []byte("test-secret"), duration: -time.Minute}

	token, err := expiring.Issue("a@b.com")
	require.NoError(t, err)

	tokens := NewTokenService("test-secret")
	_, err = tokens.Validate(token)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthentication, errs.KindOf(err))
}
