package utils

import (
	"strings"
	"testing"
)

func TestGenerateBookingReference(t *testing.T) {
	t.Parallel()

	ref := GenerateBookingReference()
	if !strings.HasPrefix(ref, "BR-") {
		t.Fatalf("reference %q missing BR- prefix", ref)
	}
	if len(ref) != len("BR-")+8 {
		t.Fatalf("reference %q has length %d, want %d", ref, len(ref), len("BR-")+8)
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("reference %q is not uppercase", ref)
	}

	if other := GenerateBookingReference(); other == ref {
		t.Fatalf("two references collided: %q", ref)
	}
}

func TestEnvIntOrDefault(t *testing.T) {
	t.Run("missing variable falls back", func(t *testing.T) {
		t.Setenv("BOOKING_TEST_INT", "")
		if got := EnvIntOrDefault("BOOKING_TEST_INT", 42); got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	})

	t.Run("parses a set value", func(t *testing.T) {
		t.Setenv("BOOKING_TEST_INT", "17")
		if got := EnvIntOrDefault("BOOKING_TEST_INT", 42); got != 17 {
			t.Fatalf("got %d, want 17", got)
		}
	})

	t.Run("garbage falls back", func(t *testing.T) {
		t.Setenv("BOOKING_TEST_INT", "lots")
		if got := EnvIntOrDefault("BOOKING_TEST_INT", 42); got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	})
}
