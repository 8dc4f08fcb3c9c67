package idgen

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var confirmationPattern = regexp.MustCompile(`^CEN-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestConfirmationNumberFormat(t *testing.T) {
	g := New()
	for i := 0; i < 200; i++ {
		code := g.ConfirmationNumber()
		if !confirmationPattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, confirmationPattern)
		}
	}
}

func TestConfirmationNumberIsDeterministicWithFixedSources(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewWith(func() time.Time { return fixed }, func(n int) int { return n - 1 })

	// 1700000000000 in base 36 is "LOYW3V28"
	if got, want := g.ConfirmationNumber(), "CEN-LOYW3V28-ZZZZ"; got != want {
		t.Errorf("code = %q, want %q", got, want)
	}
}

func TestConfirmationTimestampIsMonotonic(t *testing.T) {
	clock := time.UnixMilli(1700000000000)
	g := NewWith(func() time.Time { return clock }, nil)

	first := strings.Split(g.ConfirmationNumber(), "-")[1]
	clock = clock.Add(time.Millisecond)
	second := strings.Split(g.ConfirmationNumber(), "-")[1]

	if len(second) < len(first) || (len(second) == len(first) && second <= first) {
		t.Errorf("timestamp component did not increase: %q -> %q", first, second)
	}
}

func TestCaseIDs(t *testing.T) {
	g := New()

	id := g.CaseID()
	if !strings.HasPrefix(id, "CASE-") || len(id) != len("CASE-")+8 {
		t.Errorf("case id %q has wrong shape", id)
	}

	cb := g.CallbackCaseID()
	if !strings.HasPrefix(cb, "CALLBACK-") || len(cb) != len("CALLBACK-")+8 {
		t.Errorf("callback case id %q has wrong shape", cb)
	}

	if g.CaseID() == id {
		t.Error("case ids should not repeat")
	}
}
