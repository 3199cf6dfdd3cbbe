package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestBytesIdentity(t *testing.T) {
	blob := []byte{0x00, 0xFF, 0x42}
	enc, err := Bytes{}.Encode(blob)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Bytes{}.Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(dec, blob) {
		t.Fatalf("identity broken: %x", dec)
	}
}

func TestStringEmptyIsValid(t *testing.T) {
	enc, err := String{}.Encode("")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc == nil || len(enc) != 0 {
		t.Fatalf("empty string must encode to an empty payload, got %v", enc)
	}
	s, err := String{}.Decode(enc)
	if err != nil || s != "" {
		t.Fatalf("Decode = %q err=%v", s, err)
	}
}

func TestLimitRejectsOversizedPayloads(t *testing.T) {
	lc := Limit[string]{Inner: String{}, MaxDecode: 4}

	if _, err := lc.Decode([]byte("okay")); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	if _, err := lc.Decode([]byte("too large")); err == nil {
		t.Fatal("expected error for oversized payload")
	}

	// Encode is unaffected by the limit
	enc, err := lc.Encode(strings.Repeat("x", 100))
	if err != nil || len(enc) != 100 {
		t.Fatalf("Encode len=%d err=%v", len(enc), err)
	}
}

func TestLimitStacksOverStructuredCodec(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	lc := Limit[row]{Inner: JSON[row]{}, MaxDecode: 1 << 10}

	enc, err := lc.Encode(row{Name: "a"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := lc.Decode(enc)
	if err != nil || got.Name != "a" {
		t.Fatalf("Decode = %+v err=%v", got, err)
	}
}
