package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !h.Verify(hash, "s3cret!") {
		t.Error("expected matching password to verify")
	}
	if h.Verify(hash, "wrong") {
		t.Error("expected wrong password to be rejected")
	}
}

func TestBcryptRejectsEmpty(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	if _, err := h.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if h.Verify("", "anything") {
		t.Error("empty hash must never verify")
	}
}

func TestNewBcryptClampsCost(t *testing.T) {
	h := NewBcrypt(99).(*bcryptHasher)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
}
