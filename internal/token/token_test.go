package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	raw, err := codec.Issue("user-1", "org-1", "role-1")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "org-1", claims.OrgID)
	require.Equal(t, "role-1", claims.RoleID)
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	raw, err := codec.Issue("user-1", "org-1", "role-1")
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	issuer := NewCodec("test-secret", time.Hour)
	verifier := NewCodec("another-secret", time.Hour)

	raw, err := issuer.Issue("user-1", "org-1", "role-1")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_Garbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	_, err := codec.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
