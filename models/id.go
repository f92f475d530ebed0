package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Task IDs have the form <prefix>-<number>, e.g. fe-0001. The prefix is
// fixed per platform and the number is zero-padded to at least four digits;
// larger numbers simply widen. IDs are immutable once assigned.

var idPattern = regexp.MustCompile(`^(fe|be)-(\d+)$`)

var platformPrefixes = map[Platform]string{
	PlatformFrontend: "fe",
	PlatformBackend:  "be",
}

var prefixPlatforms = map[string]Platform{
	"fe": PlatformFrontend,
	"be": PlatformBackend,
}

// PrefixFor returns the ID prefix for a platform. Total over the two-element
// enum; an unknown platform yields an empty prefix, which never matches.
func PrefixFor(p Platform) string {
	return platformPrefixes[p]
}

// ParsedID is the decoded form of a task ID.
type ParsedID struct {
	Platform Platform
	Number   int
}

// ParseID decodes a task ID. It returns nil when the string is not a task ID
// (wrong shape or unknown prefix) rather than an error, since callers use it
// for best-effort filtering over mixed ID sets.
func ParseID(id string) *ParsedID {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return nil
	}
	platform, ok := prefixPlatforms[m[1]]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &ParsedID{Platform: platform, Number: n}
}

// FormatID encodes a platform and number as a task ID.
func FormatID(p Platform, n int) string {
	return fmt.Sprintf("%s-%04d", PrefixFor(p), n)
}

// NextID allocates the next sequential ID for a platform given every ID
// already in use. Only IDs carrying the platform's own prefix count; entries
// that carry the prefix but fail to parse contribute 0. Repeated calls are
// strictly increasing as long as the caller feeds previously allocated IDs
// back in — the function itself takes no locks.
func NextID(p Platform, existingIDs []string) string {
	prefix := PrefixFor(p) + "-"
	max := 0
	for _, id := range existingIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n := 0
		if parsed := ParseID(id); parsed != nil {
			n = parsed.Number
		}
		if n > max {
			max = n
		}
	}
	return FormatID(p, max+1)
}
