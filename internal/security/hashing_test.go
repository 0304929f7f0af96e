package security

import (
	"errors"
	"strings"
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4) // min cost for fast tests

	hash, err := h.Hash("pw12345678")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "pw12345678" {
		t.Fatal("hash should be non-empty and not the plaintext")
	}

	ok, err := h.Compare(hash, "pw12345678")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = h.Compare(hash, "other-password")
	if err != nil {
		t.Fatalf("Compare mismatch: %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestHasher_SaltUniqueness(t *testing.T) {
	h := NewHasher(4)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
	for _, hash := range []string{h1, h2} {
		ok, err := h.Compare(hash, "same-password")
		if err != nil || !ok {
			t.Errorf("each hash should verify against its password: ok=%v err=%v", ok, err)
		}
	}
}

func TestHasher_InvalidInput(t *testing.T) {
	h := NewHasher(4)

	if _, err := h.Hash(""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("empty password: want ErrInvalidPassword, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", 73)); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("73-byte password: want ErrInvalidPassword, got %v", err)
	}
	// 72 bytes is still valid
	if _, err := h.Hash(strings.Repeat("a", 72)); err != nil {
		t.Errorf("72-byte password should hash: %v", err)
	}
}

func TestHasher_CorruptHash(t *testing.T) {
	h := NewHasher(4)

	ok, err := h.Compare("not-a-bcrypt-hash", "whatever")
	if ok {
		t.Error("corrupt hash should never verify")
	}
	if !errors.Is(err, ErrCorruptHash) {
		t.Errorf("corrupt hash: want ErrCorruptHash, got %v", err)
	}

	ok, err = h.Compare("", "whatever")
	if ok || !errors.Is(err, ErrCorruptHash) {
		t.Errorf("empty hash: want ErrCorruptHash, got ok=%v err=%v", ok, err)
	}
}

func TestNewHasher_CostClamping(t *testing.T) {
	if h := NewHasher(0); h.Cost < 4 {
		t.Errorf("zero cost should clamp to a valid default, got %d", h.Cost)
	}
	if h := NewHasher(99); h.Cost > 31 {
		t.Errorf("excessive cost should clamp to max, got %d", h.Cost)
	}
}
