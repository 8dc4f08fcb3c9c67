package idgen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	casePrefix         = "CASE-"
	callbackPrefix     = "CALLBACK-"
	confirmationPrefix = "CEN-"

	shortIDLength = 8
	suffixLength  = 4
	base36Digits  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator mints case ids and confirmation numbers and owns the clock used for
// timestamps, so tests can pin both
type Generator struct {
	now   func() time.Time
	intN  func(n int) int
	newID func() string
}

// New creates a generator backed by the wall clock, math/rand and UUIDv4
func New() *Generator {
	return &Generator{
		now:   time.Now,
		intN:  rand.IntN,
		newID: uuid.NewString,
	}
}

// NewWith creates a generator with a fixed clock and random source
func NewWith(now func() time.Time, intN func(n int) int) *Generator {
	g := New()
	if now != nil {
		g.now = now
	}
	if intN != nil {
		g.intN = intN
	}
	return g
}

// Now returns the current time
func (g *Generator) Now() time.Time {
	return g.now()
}

// CaseID returns "CASE-" followed by the first 8 characters of a UUIDv4
func (g *Generator) CaseID() string {
	return casePrefix + g.newID()[:shortIDLength]
}

// CallbackCaseID keys a callback that arrives before any case id was minted
func (g *Generator) CallbackCaseID() string {
	return callbackPrefix + g.newID()[:shortIDLength]
}

// ConfirmationNumber returns "CEN-" + base36(epoch millis) + "-" + 4 random base36
// characters, all upper case
func (g *Generator) ConfirmationNumber() string {
	stamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	var suffix [suffixLength]byte
	for i := range suffix {
		suffix[i] = base36Digits[g.intN(len(base36Digits))]
	}

	return confirmationPrefix + stamp + "-" + string(suffix[:])
}
