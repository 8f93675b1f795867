package helpers

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret-password" {
		t.Fatalf("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("not a bcrypt hash: %q", hash)
	}
	if !CompareHashAndPassword(hash, "secret-password") {
		t.Fatalf("CompareHashAndPassword rejected correct password")
	}
}

func TestCompareHashAndPassword_Wrong(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CompareHashAndPassword(hash, "other-password") {
		t.Fatalf("CompareHashAndPassword accepted wrong password")
	}
	if CompareHashAndPassword("not-a-hash", "secret-password") {
		t.Fatalf("CompareHashAndPassword accepted invalid hash")
	}
}
