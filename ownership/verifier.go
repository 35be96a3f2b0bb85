package ownership

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"starledger/common"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Verifier reports whether signature authenticates message under the
// given wallet address. Implementations must treat any decode or parse
// failure as a verification failure, never as success.
type Verifier func(address, message, signature string) bool

// Ed25519Verifier verifies a base58 ed25519 signature. The address is the
// base58 encoding of the public key itself.
func Ed25519Verifier(address, message, signature string) bool {
	pubKey, err := common.DecodeBase58ToBytes(address)
	if err != nil || len(pubKey) != ed25519.PublicKeySize {
		return false
	}
	sig, err := common.DecodeBase58ToBytes(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), []byte(message), sig)
}

// Secp256k1Verifier verifies a base58 DER-encoded ECDSA signature over
// sha256(message). The address is the base58 encoding of the compressed
// public key.
func Secp256k1Verifier(address, message, signature string) bool {
	pubKeyBytes, err := common.DecodeBase58ToBytes(address)
	if err != nil {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	sigBytes, err := common.DecodeBase58ToBytes(signature)
	if err != nil {
		return false
	}
	sig, err := secpecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	digest := sha256.Sum256([]byte(message))
	return sig.Verify(digest[:], pubKey)
}

// VerifierForScheme resolves a configured scheme name to a Verifier.
func VerifierForScheme(scheme string) (Verifier, error) {
	switch scheme {
	case "", "ed25519":
		return Ed25519Verifier, nil
	case "secp256k1":
		return Secp256k1Verifier, nil
	default:
		return nil, fmt.Errorf("unknown signature scheme %q", scheme)
	}
}
