package jwtx

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/aussiebroadwan/todo/pkg/cryptox"
)

// KeyManager wires a Signer, its KeySet and a matching Verifier together.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signer    Signer
	algorithm string
}

// KeyManagerOptions configures the KeyManager for a specific use case.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmHS256 or AlgorithmEdDSA.
	Algorithm string

	// Issuer is set on issued tokens and enforced on verification.
	Issuer string

	// Secret is the shared HS256 secret.
	Secret []byte

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When empty with EdDSA an
	// ephemeral key is generated and tokens die with the process.
	PrivateKeyPEM []byte

	// Leeway allows small clock skew when validating exp.
	Leeway time.Duration
}

// NewKeyManager builds a KeyManager from opts. The key id is derived from the
// key material so tokens survive restarts that reuse the same key.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	var signer Signer

	switch opts.Algorithm {
	case AlgorithmHS256:
		s, err := NewSignerHS256(keyID(opts.Secret), opts.Secret)
		if err != nil {
			return nil, err
		}
		signer = s

	case AlgorithmEdDSA:
		pemKey := opts.PrivateKeyPEM
		if len(pemKey) == 0 {
			generated, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return nil, fmt.Errorf("jwtx: generate EdDSA key: %w", err)
			}
			pemKey = generated
		}

		priv, err := cryptox.ParseEd25519PrivateKey(pemKey)
		if err != nil {
			return nil, err
		}

		s, err := NewSignerEdDSA(keyID(priv.Public().(ed25519.PublicKey)), pemKey)
		if err != nil {
			return nil, err
		}
		signer = s

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: HS256, EdDSA)", opts.Algorithm)
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	return &KeyManager{
		Verifier: NewVerifier(keys, VerifyOptions{
			Algorithm: opts.Algorithm,
			Issuer:    opts.Issuer,
			Leeway:    opts.Leeway,
		}),
		KeySet:    keys,
		signer:    signer,
		algorithm: opts.Algorithm,
	}, nil
}

// Signer returns the active signer.
func (km *KeyManager) Signer() Signer { return km.signer }

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string { return km.algorithm }

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }

func keyID(material []byte) string {
	return "todo-" + cryptox.FingerprintToken(string(material))[:16]
}
