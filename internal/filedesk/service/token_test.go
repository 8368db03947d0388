package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestIssueAccessToken(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, "filedesk-test", []string{Audience})

	svc := &TokenService{Signer: signer, Issuer: "filedesk-test", TTL: time.Hour}
	token, ttl, err := svc.IssueAccessToken(domain.Credential{Email: "ada@example.com", DisplayName: "Ada Lovelace"})
	require.NoError(t, err)
	require.Equal(t, time.Hour, ttl)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", claims.Subject)
	require.Equal(t, "Ada Lovelace", claims.Name)
	require.Equal(t, []string{jwtx.AMRPassword}, claims.AMR)
}
