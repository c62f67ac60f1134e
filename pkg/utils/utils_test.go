package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNewInviteCodeFormat(t *testing.T) {
	u := New()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := u.NewInviteCode()
		if err != nil {
			t.Fatalf("NewInviteCode() error = %v", err)
		}

		if len(code) != 9 || code[4] != '-' {
			t.Fatalf("code %q does not match XXXX-XXXX", code)
		}

		for _, ch := range strings.ReplaceAll(code, "-", "") {
			if !strings.ContainsRune(inviteAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}

		seen[code] = true
	}

	if len(seen) < 95 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}

func TestNewULIDFromTimestampOrdering(t *testing.T) {
	u := New()

	earlier, err := u.NewULIDFromTimestamp(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp() error = %v", err)
	}
	later, err := u.NewULIDFromTimestamp(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp() error = %v", err)
	}

	if !(earlier < later) {
		t.Errorf("ULIDs not time ordered: %q >= %q", earlier, later)
	}
	if len(earlier) != 26 {
		t.Errorf("ULID length = %d, want 26", len(earlier))
	}
}
