package jwtx

// Supported JWT signing algorithms
const (
	AlgorithmHS256 = "HS256"
	AlgorithmEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Validate() error

	// VerificationKey is the key a verifier needs to check this signer's
	// tokens. For HS256 this is the shared secret.
	VerificationKey() any
}
