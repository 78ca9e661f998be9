package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordMatchesOwnHash(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("pw1", hash) {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if CheckPassword("pw2", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestCheckPasswordFailsClosedOnMalformedHash(t *testing.T) {
	if CheckPassword("pw1", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash must verify as false, never true")
	}
	if CheckPassword("pw1", "") {
		t.Fatal("empty hash must verify as false")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ by salt")
	}
}
