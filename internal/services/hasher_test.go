package services

import (
	"strings"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/testutil"
)

func TestSHA256Hasher(t *testing.T) {
	hasher := SHA256Hasher{}

	t.Run("deterministic", func(t *testing.T) {
		first, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)
		second, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		if first != second {
			t.Errorf("expected identical hashes for identical passwords, got %s and %s", first, second)
		}
	})

	t.Run("known_digest", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		// Fixed-length lowercase hex, matching what existing databases hold.
		if hash != "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6" {
			t.Errorf("unexpected digest: %s", hash)
		}
	})

	t.Run("verify", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		if !hasher.Verify("secret1", hash) {
			t.Error("correct password should verify")
		}
		if hasher.Verify("wrong", hash) {
			t.Error("wrong password should not verify")
		}
		if hasher.Verify("secret1", "") {
			t.Error("empty stored hash should never verify")
		}
	})
}

func TestArgon2Hasher(t *testing.T) {
	hasher := Argon2Hasher{}

	t.Run("format", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		if !strings.HasPrefix(hash, "$argon2id$") {
			t.Errorf("expected PHC argon2id format, got %s", hash)
		}
	})

	t.Run("salted", func(t *testing.T) {
		first, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)
		second, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		if first == second {
			t.Error("expected distinct hashes for identical passwords")
		}
	})

	t.Run("verify", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		testutil.AssertNoError(t, err)

		if !hasher.Verify("secret1", hash) {
			t.Error("correct password should verify")
		}
		if hasher.Verify("wrong", hash) {
			t.Error("wrong password should not verify")
		}
	})

	t.Run("malformed_stored_hash", func(t *testing.T) {
		if hasher.Verify("secret1", "$argon2id$garbage") {
			t.Error("malformed stored hash should not verify")
		}
	})
}

func TestVerifyDispatchesOnStoredFormat(t *testing.T) {
	// A store can hold a mix of schemes; either hasher must verify both.
	legacyHash, err := SHA256Hasher{}.Hash("secret1")
	testutil.AssertNoError(t, err)
	argonHash, err := Argon2Hasher{}.Hash("secret1")
	testutil.AssertNoError(t, err)

	for _, hasher := range []PasswordHasher{SHA256Hasher{}, Argon2Hasher{}} {
		if !hasher.Verify("secret1", legacyHash) {
			t.Errorf("%T should verify the legacy format", hasher)
		}
		if !hasher.Verify("secret1", argonHash) {
			t.Errorf("%T should verify the argon2id format", hasher)
		}
	}
}

func TestNewPasswordHasher(t *testing.T) {
	if _, ok := NewPasswordHasher(config.PasswordSchemeSHA256).(SHA256Hasher); !ok {
		t.Error("expected SHA256Hasher for the sha256 scheme")
	}
	if _, ok := NewPasswordHasher(config.PasswordSchemeArgon2id).(Argon2Hasher); !ok {
		t.Error("expected Argon2Hasher for the argon2id scheme")
	}
}
