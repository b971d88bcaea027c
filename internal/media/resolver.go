// Package media normalizes stored image references into client-facing URLs.
//
// A storage migration left some rows with an externally hosted URL embedded
// inside a locally rooted media path, e.g.
//
//	/media/https%3A//res.cloudinary.com/demo/image/upload/v1/x.jpg
//
// The resolver repairs that shape; everything else passes through untouched.
package media

import (
	"net/url"
	"strings"
)

const DefaultPrefix = "/media/"

// Resolver rewrites defective double-encoded references under Prefix.
type Resolver struct {
	Prefix string
}

func NewResolver(prefix string) *Resolver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Resolver{Prefix: prefix}
}

// URL returns the canonical absolute URL for a stored reference. Empty
// references resolve to empty. References that do not match the defective
// "<prefix>http..." shape are returned unchanged, local paths included.
func (r *Resolver) URL(ref string) string {
	if ref == "" {
		return ""
	}
	if !strings.HasPrefix(ref, r.Prefix+"http") {
		return ref
	}

	cleaned := strings.TrimPrefix(ref, r.Prefix)
	if decoded, err := url.PathUnescape(cleaned); err == nil {
		cleaned = decoded
	}

	switch {
	case strings.HasPrefix(cleaned, "https://"), strings.HasPrefix(cleaned, "http://"):
		// Already fully qualified once decoded.
		return cleaned
	case strings.HasPrefix(cleaned, "https:/"):
		return "https://" + strings.TrimPrefix(cleaned, "https:/")
	case strings.HasPrefix(cleaned, "http:/"):
		// Single-slash scheme, the usual Cloudinary mangling. External hosts
		// all serve https.
		return "https://" + strings.TrimPrefix(cleaned, "http:/")
	default:
		// Bare host name.
		return "https://" + cleaned
	}
}
