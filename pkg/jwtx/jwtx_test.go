package jwtx_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "filedesk-test"

func newSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t, "test-key")
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "test-key", signer.KID())

	claims := jwtx.NewAccessClaims("ayse@example.com", "Ayşe Yılmaz", 5*time.Minute, exampleIssuer, []string{"console"}, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	require.True(t, keyset.IsReady())

	jwks := keyset.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)

	parsed, err := jwtx.NewVerifierEdDSA(keyset, exampleIssuer, []string{"console"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "ayse@example.com", parsed.Subject)
	require.Equal(t, "Ayşe Yılmaz", parsed.Name)
	require.Equal(t, []string{jwtx.AMRPassword}, parsed.AMR)
	require.NotEmpty(t, parsed.ID)
}

func TestEdDSAVerifyFailures(t *testing.T) {
	signer := newSigner(t, "k1")
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, nil, time.Now()))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keyset, "someone-else", nil).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, []string{"other"}, time.Now()))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, []string{"console"}).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, nil, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
		require.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		other := newSigner(t, "k2")
		token, err := other.Sign(jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, nil, time.Now()))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, nil, time.Now()))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		forged, err := signer.Sign(jwtx.NewAccessClaims("root@x.com", "Root", time.Minute, exampleIssuer, nil, time.Now()))
		require.NoError(t, err)
		parts[1] = strings.Split(forged, ".")[1]

		_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.NewAccessClaims("a@x.com", "A", time.Minute, exampleIssuer, nil, time.Now()))
		tok.Header["kid"] = "k1"
		raw, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(raw)
		require.Error(t, err)
	})
}

func TestSignerDerivesStableKID(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	a, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)
	b, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)

	require.NotEmpty(t, a.KID())
	require.Equal(t, a.KID(), b.KID())
	require.Len(t, a.KID(), 43)
}

func TestNewSignerRejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("test", []byte("not-a-pem-key"))
	require.ErrorContains(t, err, "invalid PEM")
}

func TestKeySetRejectsForeignKeys(t *testing.T) {
	keyset := jwtx.NewKeySet()
	require.Error(t, keyset.AddJWK(jwtx.JWK{Kty: "RSA", Kid: "r1"}))
	require.False(t, keyset.IsReady())
}

func TestJWKSEncoding(t *testing.T) {
	signer := newSigner(t, "k1")
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	require.NoError(t, keyset.AddSigner(signer))

	raw, err := json.Marshal(keyset.PublicJWKS())
	require.NoError(t, err)
	require.Contains(t, string(raw), `"kid":"k1"`)
	require.Len(t, keyset.PublicJWKS().Keys, 1, "re-adding a kid must not duplicate it")
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	valid := jwtx.NewAccessClaims("s", "n", time.Minute, exampleIssuer, nil, now)
	require.NoError(t, valid.ValidateExpiry())

	expired := jwtx.NewAccessClaims("s", "n", time.Minute, exampleIssuer, nil, now.Add(-2*time.Minute))
	require.ErrorIs(t, expired.ValidateExpiry(), jwtx.ErrExpired)
	require.NoError(t, expired.ValidateExpiryWithLeeway(2*time.Minute))

	future := jwtx.NewAccessClaims("s", "n", time.Minute, exampleIssuer, nil, now.Add(time.Hour))
	require.ErrorIs(t, future.ValidateExpiry(), jwtx.ErrNotYetValid)
}
