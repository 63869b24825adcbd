// Package slug allocates unique, URL-safe identifiers for users and groups.
package slug

import (
	"context"
	"strconv"
	"strings"

	"focuspit/internal/errors"
)

// DefaultMaxAttempts bounds the collision retry loop. The source of this
// design retried forever; a pathological number of collisions now fails with
// ErrExhausted instead of spinning.
const DefaultMaxAttempts = 1000

// ErrExhausted is returned when no free slug was found within the attempt budget.
var ErrExhausted = errors.New("slug: attempts exhausted")

// ExistsFunc reports whether a candidate slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Allocator hands out unique slugs by probing an existence check. Allocation
// is check-then-write, not atomic: two concurrent allocations for the same
// base can race between the check and the caller's write, yielding either a
// duplicate or a wasted counter gap. That race is accepted for this
// low-contention identifier; callers that need hard uniqueness must make the
// write itself fail on collision (the group repository does, via
// create-if-absent on the slug-as-id document).
type Allocator struct {
	maxAttempts int
}

// NewAllocator creates an Allocator. A non-positive maxAttempts selects
// DefaultMaxAttempts.
func NewAllocator(maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{maxAttempts: maxAttempts}
}

// Allocate returns a free slug derived from baseName: the bare slug first,
// then "-1", "-2", ... suffixes until exists reports false or the attempt
// budget runs out.
func (a *Allocator) Allocate(ctx context.Context, baseName string, exists ExistsFunc) (string, error) {
	base := Slugify(baseName)

	candidate := base
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", errors.Wrapf(err, "slug existence check for %q", candidate)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}

	return "", errors.Wrapf(ErrExhausted, "base %q after %d attempts", base, a.maxAttempts)
}

// Slugify normalizes a display name to a lowercase, ASCII, hyphen-separated
// identifier. Runs of non-alphanumeric characters collapse to one hyphen;
// leading and trailing hyphens are trimmed. An input with no usable
// characters yields "untitled".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "untitled"
	}

	return s
}
