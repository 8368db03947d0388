package service

import (
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
)

// Audience is the aud claim of every access token the console issues.
const Audience = "filedesk"

type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// IssueAccessToken mints a signed session token for an authenticated
// credential. The display name rides along as the audit actor.
func (s *TokenService) IssueAccessToken(cred domain.Credential) (string, time.Duration, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	claims := jwtx.NewAccessClaims(cred.Email, cred.DisplayName, ttl, s.Issuer, []string{Audience}, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, ttl, nil
}
