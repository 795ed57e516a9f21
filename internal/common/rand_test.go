package common

import (
	"encoding/hex"
	"testing"
)

func TestMakeRandHexString_LengthAndEncoding(t *testing.T) {
	s, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("output is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s, err := MakeRandHexString(32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := seen[s]; ok {
			t.Fatalf("duplicate token generated: %s", s)
		}
		seen[s] = struct{}{}
	}
}
