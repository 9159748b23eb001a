package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty string")
	}
	if strings.Contains(hash, "secret1") {
		t.Fatal("HashPassword() leaked the plaintext")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if !CheckPassword("secret1", hash) {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword() = true for the wrong password")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("secret1", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
	if CheckPassword("secret1", "") {
		t.Error("CheckPassword() = true for an empty hash")
	}
}
