package block

import (
	"regexp"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"

	"starledger/jsonx"
)

var hexHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSealAssignsAllFields(t *testing.T) {
	b := NewOwned([]byte(`{"star":"Orion"}`), "addr1")
	if b.Hash != "" || b.Timestamp != 0 {
		t.Fatalf("Unsealed block should carry no hash or timestamp, got %q %d", b.Hash, b.Timestamp)
	}

	now := time.Now().Unix()
	b.Seal(3, "aa11", now)

	if b.Height != 3 {
		t.Errorf("Expected height 3, got %d", b.Height)
	}
	if b.PrevHash != "aa11" {
		t.Errorf("Expected prev hash aa11, got %s", b.PrevHash)
	}
	if b.Timestamp != now {
		t.Errorf("Expected timestamp %d, got %d", now, b.Timestamp)
	}
	if !hexHashPattern.MatchString(b.Hash) {
		t.Errorf("Expected 64 lowercase hex chars, got %q", b.Hash)
	}
}

func TestComputeHashDeterministic(t *testing.T) {
	a := NewOwned([]byte(`{"star":"Vega"}`), "addr1")
	b := NewOwned([]byte(`{"star":"Vega"}`), "addr1")
	a.Seal(1, "prev", 1700000000)
	b.Seal(1, "prev", 1700000000)

	if a.Hash != b.Hash {
		t.Errorf("Byte-identical content should hash identically: %s vs %s", a.Hash, b.Hash)
	}
}

func TestComputeHashCoversEveryField(t *testing.T) {
	base := func() *Block {
		b := NewOwned([]byte(`{"star":"Vega"}`), "addr1")
		b.Seal(1, "prev", 1700000000)
		return b
	}

	tests := []struct {
		name   string
		mutate func(*Block)
	}{
		{"payload", func(b *Block) { b.Payload = "00" }},
		{"height", func(b *Block) { b.Height = 2 }},
		{"prev hash", func(b *Block) { b.PrevHash = "other" }},
		{"timestamp", func(b *Block) { b.Timestamp = 1700000001 }},
		{"owner", func(b *Block) { b.Owner = "addr2" }},
	}

	reference := base().Hash
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base()
			tt.mutate(b)
			if b.ComputeHash() == reference {
				t.Errorf("Mutating %s should change the hash", tt.name)
			}
			if b.Hash != reference {
				t.Errorf("ComputeHash must not touch the stored hash")
			}
		})
	}
}

func TestGenesisBlock(t *testing.T) {
	g := NewGenesis()
	g.Seal(0, "", time.Now().Unix())

	if !g.IsGenesis() {
		t.Error("Sealed genesis should satisfy IsGenesis")
	}
	if g.Owner != "" {
		t.Errorf("Genesis should carry no owner, got %q", g.Owner)
	}

	decoded, err := g.DecodePayload()
	if err != nil {
		t.Fatalf("Genesis payload should decode: %v", err)
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object payload, got %T", decoded)
	}
	if payload["data"] != GenesisData {
		t.Errorf("Expected genesis marker %q, got %v", GenesisData, payload["data"])
	}
}

func TestIsGenesisIsIntrinsic(t *testing.T) {
	b := NewOwned([]byte(`{}`), "addr1")
	b.Seal(1, "parenthash", time.Now().Unix())
	if b.IsGenesis() {
		t.Error("Data block with a predecessor must not satisfy IsGenesis")
	}
}

func TestWellFormed(t *testing.T) {
	sealed := func() *Block {
		b := New([]byte(`{}`))
		b.Seal(1, "prev", time.Now().Unix())
		return b
	}

	tests := []struct {
		name   string
		mutate func(*Block)
		want   bool
	}{
		{"sealed block", func(b *Block) {}, true},
		{"empty hash", func(b *Block) { b.Hash = "" }, false},
		{"hash one short", func(b *Block) { b.Hash = b.Hash[:63] }, false},
		{"hash one long", func(b *Block) { b.Hash = b.Hash + "a" }, false},
		{"zero timestamp", func(b *Block) { b.Timestamp = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sealed()
			tt.mutate(b)
			if got := b.WellFormed(); got != tt.want {
				t.Errorf("WellFormed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodePayloadRoundTrip(t *testing.T) {
	type star struct {
		Dec   string `json:"dec"`
		RA    string `json:"ra"`
		Story string `json:"story"`
	}

	f := fuzz.New().NilChance(0)
	for i := 0; i < 20; i++ {
		var s star
		f.Fuzz(&s)

		b := newFromStruct(t, s)
		decoded, err := b.DecodePayload()
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		payload, ok := decoded.(map[string]interface{})
		if !ok {
			t.Fatalf("Expected object payload, got %T", decoded)
		}
		if payload["dec"] != s.Dec || payload["ra"] != s.RA || payload["story"] != s.Story {
			t.Errorf("Round trip mismatch: %+v vs %+v", payload, s)
		}
	}
}

func TestDecodePayloadRejectsBadHex(t *testing.T) {
	b := New([]byte(`{}`))
	b.Payload = "zz"
	if _, err := b.DecodePayload(); err == nil {
		t.Error("Expected error for non-hex payload")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewOwned([]byte(`{"star":"Lyra"}`), "addr1")
	b.Seal(1, "prev", time.Now().Unix())

	c := b.Clone()
	c.Payload = "00"
	c.Hash = "tampered"

	if b.Payload == c.Payload || b.Hash == c.Hash {
		t.Error("Mutating a clone must not affect the original")
	}
}

func newFromStruct(t *testing.T, v interface{}) *Block {
	t.Helper()
	raw, err := jsonx.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return New(raw)
}
