package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aussiebroadwan/todo/pkg/jwtx"
)

// InitSessionKeys builds the KeyManager used to sign and verify session
// tokens.
//
// HS256 uses the shared secret from TODO_JWT_SECRET. EdDSA reads a PKCS8 key
// from TODO_JWT_KEY_FILE; without one an ephemeral key is generated and every
// session is invalidated on restart.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Algorithm: cfg.JWTAlgorithm,
		Issuer:    cfg.Issuer,
		Leeway:    30 * time.Second,
	}

	switch cfg.JWTAlgorithm {
	case jwtx.AlgorithmHS256:
		opts.Secret = []byte(cfg.JWTSecret)

	case jwtx.AlgorithmEdDSA:
		if cfg.JWTKeyFile != "" {
			pem, err := os.ReadFile(cfg.JWTKeyFile)
			if err != nil {
				return nil, fmt.Errorf("read TODO_JWT_KEY_FILE: %w", err)
			}
			opts.PrivateKeyPEM = pem
		} else {
			logger.Warn("no TODO_JWT_KEY_FILE set, using an ephemeral EdDSA key; sessions will not survive a restart")
		}
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, err
	}

	logger.Info("session signing key loaded",
		"algorithm", km.Algorithm(),
		"kid", km.Signer().KID(),
		"issuer", cfg.Issuer,
		"token_ttl", cfg.TokenTTL,
	)
	return km, nil
}
