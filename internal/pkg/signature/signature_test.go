package signature

import (
	"errors"
	"testing"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
)

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner(""); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewSigner("secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCanonical(t *testing.T) {
	got := Canonical(map[string]string{
		"merchant": "250001",
		"currency": "USD",
		"dynamic":  "1",
	})
	// Sorted keys: currency, dynamic, merchant.
	want := "3USD11" + "6250001"
	if got != want {
		t.Fatalf("unexpected canonical string: %q, want %q", got, want)
	}
}

func TestCanonicalEmptyValue(t *testing.T) {
	if got := Canonical(map[string]string{"a": ""}); got != "0" {
		t.Fatalf("expected %q, got %q", "0", got)
	}
}

func TestSignDeterministic(t *testing.T) {
	signer, err := NewSigner("top-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := map[string]string{
		"merchant":     "250001",
		"currency":     "USD",
		"item-price-0": "49.99",
	}

	first := signer.Sign(params)
	second := signer.Sign(params)
	if first != second {
		t.Fatalf("expected deterministic digest, got %q and %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	for _, r := range first {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("digest not lowercase hex: %q", first)
		}
	}
}

func TestSignSensitiveToEveryParameter(t *testing.T) {
	signer, _ := NewSigner("top-secret")
	base := map[string]string{
		"merchant":     "250001",
		"currency":     "USD",
		"item-price-0": "49.99",
	}
	baseline := signer.Sign(base)

	for key := range base {
		mutated := make(map[string]string, len(base))
		for k, v := range base {
			mutated[k] = v
		}
		mutated[key] = base[key] + "x"
		if signer.Sign(mutated) == baseline {
			t.Fatalf("changing %q did not change the digest", key)
		}
	}
}

func TestSignDiffersBySecret(t *testing.T) {
	params := map[string]string{"merchant": "250001"}
	a, _ := NewSigner("secret-a")
	b, _ := NewSigner("secret-b")
	if a.Sign(params) == b.Sign(params) {
		t.Fatal("different secrets produced identical digests")
	}
}

func TestVerify(t *testing.T) {
	signer, _ := NewSigner("top-secret")
	params := map[string]string{"merchant": "250001", "currency": "USD"}
	digest := signer.Sign(params)

	if err := signer.Verify(params, digest); err != nil {
		t.Fatalf("expected valid digest to verify, got %v", err)
	}

	t.Run("missing digest", func(t *testing.T) {
		if err := signer.Verify(params, ""); !errors.Is(err, domainErrors.ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})

	t.Run("tampered params", func(t *testing.T) {
		tampered := map[string]string{"merchant": "999999", "currency": "USD"}
		if err := signer.Verify(tampered, digest); !errors.Is(err, domainErrors.ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})

	t.Run("tampered digest", func(t *testing.T) {
		if err := signer.Verify(params, digest[:len(digest)-1]+"g"); !errors.Is(err, domainErrors.ErrSignatureMismatch) {
			t.Fatalf("expected ErrSignatureMismatch, got %v", err)
		}
	})
}
