package requestid

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type job struct {
	ID requestID
}

// Alias keeps the test declaration close to how callers embed the field.
type requestID = ID

func TestID_LazyAndStable(t *testing.T) {
	j := &job{}

	first := j.ID.UUID()
	if first == (uuid.UUID{}) {
		t.Fatalf("expected a generated identifier, got zero value")
	}
	if again := j.ID.UUID(); again != first {
		t.Fatalf("expected stable identifier, got %s then %s", first, again)
	}
}

func TestID_DistinctInstances(t *testing.T) {
	a := &job{}
	b := &job{}
	if a.ID.UUID() == b.ID.UUID() {
		t.Fatalf("expected distinct identifiers for distinct instances")
	}
}

func TestID_ConcurrentFirstAccess(t *testing.T) {
	j := &job{}

	const workers = 64
	var wg sync.WaitGroup
	gate := make(chan struct{})
	got := make([]uuid.UUID, workers)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(slot int) {
			defer wg.Done()
			<-gate
			got[slot] = j.ID.UUID()
		}(i)
	}
	close(gate)
	wg.Wait()

	for i := 1; i < workers; i++ {
		if got[i] != got[0] {
			t.Fatalf("worker %d observed %s, worker 0 observed %s", i, got[i], got[0])
		}
	}
}

func TestID_Encodings(t *testing.T) {
	j := &job{}
	id := j.ID.UUID()

	hexForm := j.ID.Hex()
	if len(hexForm) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(hexForm))
	}
	rawHex, err := hex.DecodeString(hexForm)
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	if string(rawHex) != string(id[:]) {
		t.Fatalf("hex form does not round-trip")
	}

	rawB64, err := base64.StdEncoding.DecodeString(j.ID.Base64())
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if string(rawB64) != string(id[:]) {
		t.Fatalf("base64 form does not round-trip")
	}

	encoded, err := j.ID.Encoded(EncodingHex)
	if err != nil {
		t.Fatalf("encoded: %v", err)
	}
	if encoded != hexForm {
		t.Fatalf("expected Encoded(hex) to match Hex(), got %q vs %q", encoded, hexForm)
	}
}

func TestID_UnknownEncoding(t *testing.T) {
	j := &job{}
	_, err := j.ID.Encoded("uuencode")
	if err == nil {
		t.Fatalf("expected unsupported encoding error")
	}
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected unsupported encoding error, got %v", err)
	}
	if _, err := j.ID.Encoded(" HEX "); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected non-exact name to be rejected, got %v", err)
	}
}

func TestID_StringIsCanonicalUUID(t *testing.T) {
	j := &job{}
	if j.ID.String() != j.ID.UUID().String() {
		t.Fatalf("expected String to render the canonical UUID form")
	}
}
