package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("jardin-secret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "jardin-secret" {
		t.Fatal("password stored in clear")
	}
	if !VerifyPassword(hash, "jardin-secret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "mauvais") {
		t.Error("wrong password accepted")
	}
}

func TestGenerateAccessCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateAccessCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 8 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(accessCodeAlphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("generated codes are not random")
	}
}
