package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
)

// InitSigningKey loads the Ed25519 key from cfg.SigningKeyFile, generating
// it on first start, and returns the signer together with a KeySet and
// verifier over it. Tokens stay valid across restarts while the file does.
func InitSigningKey(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, jwtx.Verifier, error) {
	pemKey, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load signing key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA("", pemKey) // kid is the key thumbprint
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, nil, fmt.Errorf("register signing key: %w", err)
	}

	logger.Info("signing key loaded",
		"kid", signer.KID(),
		"alg", signer.Alg(),
		"file", cfg.SigningKeyFile,
	)

	verifier := jwtx.NewVerifierEdDSA(keys, cfg.TokenIssuer, []string{service.Audience})
	return signer, keys, verifier, nil
}
