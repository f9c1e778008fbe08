// Package urlutil holds the URL helpers shared by the crawler, the CLI and the
// test generator.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// HashRoutePrefix marks a client-side route in an href (e.g. "#!/settings").
const HashRoutePrefix = "#!"

// ValidateURL checks that the string is an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// Origin returns scheme://host[:port] for a URL. Unparseable input yields "://".
func Origin(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "://"
	}
	return parsed.Scheme + "://" + parsed.Host
}

// JoinHashRoute appends a "#!" href to the current URL with its fragment removed.
// Standard reference resolution is deliberately not used here: it would drop the
// current path's semantics for client-side routers.
func JoinHashRoute(current, href string) string {
	base, _, _ := strings.Cut(current, "#")
	return base + href
}

// Resolve resolves href against base using RFC 3986 reference resolution.
// If either side fails to parse, href is returned unchanged.
func Resolve(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// PageSlug derives a file-name stem from a page URL: the path with slashes
// turned into underscores ("index" for the root), plus the fragment with "!"
// and "#" stripped when a fragment is present.
func PageSlug(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "index"
	}

	name := strings.ReplaceAll(strings.Trim(parsed.Path, "/"), "/", "_")
	if name == "" {
		name = "index"
	}

	if parsed.Fragment != "" {
		fragment := strings.ReplaceAll(parsed.Fragment, "/", "_")
		fragment = strings.ReplaceAll(fragment, "!", "")
		fragment = strings.ReplaceAll(fragment, "#", "")
		if fragment != "" {
			name += "_" + fragment
		}
	}
	return name
}
