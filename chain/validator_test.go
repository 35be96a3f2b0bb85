package chain

import (
	"testing"
)

func TestValidateEmptyAndFresh(t *testing.T) {
	c := New()
	if faults := c.Validate(); len(faults) != 0 {
		t.Errorf("Empty chain should validate, got %v", faults)
	}
	c.Initialize()
	if faults := c.Validate(); len(faults) != 0 {
		t.Errorf("Genesis-only chain should validate, got %v", faults)
	}
}

func TestValidateReportsTamperedPayload(t *testing.T) {
	c := newTestChain(t)
	mustAppend(t, c, `{"star":"a"}`, "alice")
	mustAppend(t, c, `{"star":"b"}`, "bob")
	mustAppend(t, c, `{"star":"c"}`, "carol")

	// mutate block 2's payload without recomputing its hash
	c.blocks[2].Payload = "00"

	faults := c.Validate()
	if len(faults) != 2 {
		t.Fatalf("Expected 2 faults, got %d: %v", len(faults), faults)
	}
	if faults[0].Height != 2 || faults[0].Kind != FaultIntegrity {
		t.Errorf("Expected integrity fault at height 2, got %+v", faults[0])
	}
	if faults[1].Height != 3 || faults[1].Kind != FaultLinkage {
		t.Errorf("Expected linkage fault at height 3, got %+v", faults[1])
	}
}

func TestValidateReportsTamperedHashField(t *testing.T) {
	c := newTestChain(t)
	mustAppend(t, c, `{"star":"a"}`, "alice")
	mustAppend(t, c, `{"star":"b"}`, "bob")

	// overwrite the stored digest itself; content and linkage are intact
	c.blocks[1].Hash = "deadbeef" + c.blocks[1].Hash[8:]

	faults := c.Validate()
	if len(faults) != 1 {
		t.Fatalf("Expected 1 fault, got %d: %v", len(faults), faults)
	}
	if faults[0].Height != 1 || faults[0].Kind != FaultIntegrity {
		t.Errorf("Expected integrity fault at height 1, got %+v", faults[0])
	}
}

func TestValidateReportsBrokenLink(t *testing.T) {
	c := newTestChain(t)
	mustAppend(t, c, `{"star":"a"}`, "alice")
	mustAppend(t, c, `{"star":"b"}`, "bob")

	// repoint block 2 at a bogus predecessor and keep its own hash honest
	c.blocks[2].PrevHash = "0000000000000000000000000000000000000000000000000000000000000000"
	c.blocks[2].Hash = c.blocks[2].ComputeHash()

	faults := c.Validate()
	if len(faults) != 1 {
		t.Fatalf("Expected 1 fault, got %d: %v", len(faults), faults)
	}
	if faults[0].Height != 2 || faults[0].Kind != FaultLinkage {
		t.Errorf("Expected linkage fault at height 2, got %+v", faults[0])
	}
}

func TestValidateCollectsMultiBlockCorruption(t *testing.T) {
	c := newTestChain(t)
	for i := 0; i < 4; i++ {
		mustAppend(t, c, `{"star":"x"}`, "alice")
	}

	c.blocks[1].Payload = "00"
	c.blocks[3].Payload = "11"

	faults := c.Validate()
	if len(faults) != 4 {
		t.Fatalf("Expected 4 independent faults, got %d: %v", len(faults), faults)
	}
	for i := 1; i < len(faults); i++ {
		if faults[i].Height < faults[i-1].Height {
			t.Errorf("Faults should be ordered by height: %v", faults)
		}
	}
}

func TestValidateGenesisExemption(t *testing.T) {
	c := newTestChain(t)
	mustAppend(t, c, `{"star":"a"}`, "alice")

	// genesis is the trusted root; even a tampered genesis payload is not
	// an intrinsic fault, but the broken link to it must still surface
	c.blocks[0].Payload = "00"

	faults := c.Validate()
	if len(faults) != 1 {
		t.Fatalf("Expected only the linkage fault, got %v", faults)
	}
	if faults[0].Height != 1 || faults[0].Kind != FaultLinkage {
		t.Errorf("Expected linkage fault at height 1, got %+v", faults[0])
	}
}
