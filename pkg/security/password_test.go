package security

import (
	"strings"
	"testing"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}

	hash, err := HashPassword("hunter2!", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("hunter2!", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to match")
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatal("wrong password should not match")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
}

func TestVerifyPasswordRejectsMalformed(t *testing.T) {
	if _, err := VerifyPassword("x", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}
