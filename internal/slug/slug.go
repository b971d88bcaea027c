// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// foldAccents maps the Latin-1 accented characters that show up in catalog
// names onto their ASCII base letters before slugification.
var foldAccents = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a", "á", "a", "ã", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "î", "i", "ï", "i", "í", "i",
	"ò", "o", "ô", "o", "ö", "o", "ó", "o", "õ", "o",
	"ù", "u", "û", "u", "ü", "u", "ú", "u",
	"ñ", "n",
)

// Make converts a display name into a lowercase hyphenated slug: spaces
// become hyphens, accents are folded, everything outside [a-z0-9-] is
// dropped, runs of hyphens collapse. Make never disambiguates collisions;
// a colliding slug on a unique column fails the write.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = foldAccents.Replace(s)
	s = strings.ReplaceAll(s, " ", "-")

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
