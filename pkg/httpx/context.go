package httpx

import (
	"context"

	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
	CtxKeyClaims  ctxKey = "claims"
)

// ClaimsFromContext returns the verified access-token claims placed by
// AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// ActorFromContext names the authenticated caller for audit entries: the
// display name when present, otherwise the subject.
func ActorFromContext(ctx context.Context) string {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Subject
}
