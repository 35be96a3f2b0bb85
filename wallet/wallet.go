package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"starledger/common"
)

var ErrUnsupportedKey = errors.New("wallet: unsupported private key length")

// Wallet holds an ed25519 keypair. The wallet address is the base58
// encoding of the public key, so any holder of the address can verify
// challenge signatures without a key registry.
type Wallet struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	Address    string
}

// NewWallet generates a fresh keypair.
func NewWallet() (*Wallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return fromKeys(pub, priv), nil
}

// FromSeed deterministically derives a wallet from a 32-byte seed.
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ErrUnsupportedKey
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return fromKeys(priv.Public().(ed25519.PublicKey), priv), nil
}

func fromKeys(pub ed25519.PublicKey, priv ed25519.PrivateKey) *Wallet {
	return &Wallet{
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    common.EncodeBytesToBase58(pub),
	}
}

// Sign signs an arbitrary message (typically an ownership challenge) and
// returns the base58 signature.
func (w *Wallet) Sign(message string) string {
	sig := ed25519.Sign(w.PrivateKey, []byte(message))
	return common.EncodeBytesToBase58(sig)
}

// Save writes the private key seed to path as hex.
func (w *Wallet) Save(path string) error {
	seed := w.PrivateKey.Seed()
	return os.WriteFile(path, []byte(hex.EncodeToString(seed)), 0600)
}

// Load reads a hex-encoded seed file written by Save.
func Load(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode key file %s: %w", path, err)
	}
	return FromSeed(seed)
}
