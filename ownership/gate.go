package ownership

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"starledger/block"
	"starledger/chain"
	"starledger/errors"
	"starledger/logx"
	"starledger/monitoring"
)

const (
	// DefaultDomainTag binds challenges to this ledger so a signature
	// obtained for another system can never authorize an append here.
	DefaultDomainTag = "starRegistry"

	// DefaultDelimiter joins the challenge fields. Addresses must not
	// contain it; RequestChallenge rejects those outright.
	DefaultDelimiter = ":"

	// DefaultChallengeWindow is how long a challenge stays redeemable.
	// Elapsed time at or beyond the window fails the proof.
	DefaultChallengeWindow = 300 * time.Second
)

// Gate authorizes appends by a stateless challenge/response exchange.
// Nothing is stored between RequestChallenge and SubmitProof; the
// timestamp embedded in the challenge is the sole anti-replay mechanism.
type Gate struct {
	chain  *chain.Chain
	verify Verifier

	domainTag string
	delimiter string
	window    time.Duration

	now func() time.Time
}

// Option customizes a Gate.
type Option func(*Gate)

// WithVerifier swaps the signature verification capability.
func WithVerifier(v Verifier) Option {
	return func(g *Gate) { g.verify = v }
}

// WithDomainTag overrides the challenge domain tag.
func WithDomainTag(tag string) Option {
	return func(g *Gate) { g.domainTag = tag }
}

// WithChallengeWindow overrides the challenge expiry window.
func WithChallengeWindow(d time.Duration) Option {
	return func(g *Gate) { g.window = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate constructs a Gate appending to the given chain, verifying with
// Ed25519Verifier unless overridden.
func NewGate(c *chain.Chain, opts ...Option) *Gate {
	g := &Gate{
		chain:     c,
		verify:    Ed25519Verifier,
		domainTag: DefaultDomainTag,
		delimiter: DefaultDelimiter,
		window:    DefaultChallengeWindow,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequestChallenge issues the challenge string the caller must sign:
// address, current unix seconds and the domain tag, delimiter-joined.
func (g *Gate) RequestChallenge(address string) (string, error) {
	if address == "" || strings.Contains(address, g.delimiter) {
		return "", errors.NewError(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress)
	}
	challenge := fmt.Sprintf("%s%s%d%s%s", address, g.delimiter, g.now().Unix(), g.delimiter, g.domainTag)
	monitoring.IncreaseIssuedChallenges()
	return challenge, nil
}

// SubmitProof checks the challenge timing and signature, and on success
// appends a new block owning the payload. The caller recovers from
// challenge_expired by requesting a fresh challenge; no retry happens
// here.
func (g *Gate) SubmitProof(address, challenge, signature string, payload []byte) (*block.Block, error) {
	issuedAt, err := g.parseChallengeTime(challenge)
	if err != nil {
		monitoring.RecordRejectedProof(monitoring.ProofMalformedChallenge)
		return nil, err
	}

	if elapsed := g.now().Unix() - issuedAt; elapsed >= int64(g.window.Seconds()) {
		monitoring.RecordRejectedProof(monitoring.ProofChallengeExpired)
		return nil, errors.NewError(errors.ErrCodeChallengeExpired, errors.ErrMsgChallengeExpired)
	}

	if !g.verifySafely(address, challenge, signature) {
		monitoring.RecordRejectedProof(monitoring.ProofInvalidSignature)
		logx.Warn("OWNERSHIP", "Rejected proof for address ", address, ": bad signature")
		return nil, errors.NewError(errors.ErrCodeSignatureInvalid, errors.ErrMsgSignatureInvalid)
	}

	sealed, err := g.chain.Append(block.NewOwned(payload, address))
	if err != nil {
		monitoring.RecordRejectedProof(monitoring.ProofChainInvalid)
		return nil, err
	}
	logx.Info("OWNERSHIP", "Accepted proof for address ", address, ", block ", sealed.Height)
	return sealed, nil
}

// parseChallengeTime extracts the embedded unix timestamp. The challenge
// must have exactly three delimiter-separated fields with an unsigned
// integer in the middle.
func (g *Gate) parseChallengeTime(challenge string) (int64, error) {
	parts := strings.Split(challenge, g.delimiter)
	if len(parts) != 3 {
		return 0, errors.NewError(errors.ErrCodeMalformedChallenge, errors.ErrMsgMalformedChallenge)
	}
	issuedAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || issuedAt < 0 {
		return 0, errors.NewError(errors.ErrCodeMalformedChallenge, errors.ErrMsgMalformedChallenge)
	}
	return issuedAt, nil
}

// verifySafely shields the append path from a panicking verifier; a
// panic counts as verification failure.
func (g *Gate) verifySafely(address, challenge, signature string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.IncreasePanicCount()
			logx.Error("OWNERSHIP", "Verifier panic: ", r)
			ok = false
		}
	}()
	return g.verify(address, challenge, signature)
}
