package api

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// DefaultAPIHost is the live, uncached API host.
	DefaultAPIHost = "api.sanity.io"
	// CDNAPIHost serves cached reads.
	CDNAPIHost = "apicdn.sanity.io"
	// DefaultAPIVersion is the dated API version used when none is configured.
	DefaultAPIVersion = "v2022-03-07"
)

// BaseURL builds the versioned API root for a project,
// e.g. https://abc123.api.sanity.io/v2022-03-07.
func BaseURL(projectID, host, apiVersion string, useCDN bool) string {
	if host == "" {
		host = DefaultAPIHost
	}
	if useCDN && host == DefaultAPIHost {
		host = CDNAPIHost
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if !strings.HasPrefix(apiVersion, "v") {
		apiVersion = "v" + apiVersion
	}
	return fmt.Sprintf("https://%s.%s/%s", projectID, host, apiVersion)
}

// CompactQuery shrinks a GROQ query for use in a URL. Whitespace inside
// string literals is preserved. Outside literals, runs of whitespace are
// dropped unless they separate two word characters, where a single space
// is kept (so `order(name desc)` survives).
func CompactQuery(groq string) string {
	var b strings.Builder
	b.Grow(len(groq))

	var (
		quote   rune
		escaped bool
		pending bool
		prev    rune
	)
	for _, r := range groq {
		if quote != 0 {
			b.WriteRune(r)
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			prev = r
			continue
		}

		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 && isWordRune(prev) && isWordRune(r) {
			b.WriteByte(' ')
		}
		pending = false

		if r == '"' || r == '\'' {
			quote = r
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || r == '@' || r == '"' || r == '\'' ||
		unicode.IsLetter(r) || unicode.IsDigit(r)
}
