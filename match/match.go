// Package match groups historical files by the source domain token carried
// in file names.
package match

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNoDomain reports a file name with no extractable domain token; without
// one, no dedup history can be located for the file.
var ErrNoDomain = errors.New("no domain token in file name")

// Hostname-like token immediately preceding a recognized extension, e.g.
// "acme-store" in "acme-store_2024.csv".
var domainRe = regexp.MustCompile(`(?i)([a-z0-9.\-]+)[\w.\-]*\.(csv|xlsx)$`)

// Token-interior characters; a match is only accepted when the token is
// not letter/digit/hyphen-adjacent, so that "shop" does not group with
// "bigshop". Dots, underscores and path separators act as boundaries.
const tokenInterior = `a-z0-9\-`

// Group describes the historical files sharing a domain with the new file
// currently being processed.
type Group struct {
	Domain    string
	FilePaths []string
}

// ExtractDomain derives the domain token from a file name. Deterministic,
// depends only on the base name.
func ExtractDomain(filename string) (string, error) {
	m := domainRe.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return "", fmt.Errorf("%s: %w", filename, ErrNoDomain)
	}
	return m[1], nil
}

// FindMatches collects the historical paths containing the domain token.
// The token may appear anywhere in the path but must sit on token
// boundaries, case-insensitive.
func FindMatches(domain string, oldPaths []string) Group {
	group := Group{Domain: domain}

	pattern := regexp.MustCompile(
		`(?i)(^|[^` + tokenInterior + `])` + regexp.QuoteMeta(strings.ToLower(domain)) + `([^` + tokenInterior + `]|$)`,
	)
	for _, path := range oldPaths {
		if pattern.MatchString(path) {
			group.FilePaths = append(group.FilePaths, path)
		}
	}

	return group
}
