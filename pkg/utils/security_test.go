package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal plaintext")
	}

	if !VerifyPassword("s3cret-pass", hash) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Error("wrong password should not verify")
	}
}
