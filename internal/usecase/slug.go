package usecase

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugSuffixLen = 8
	slugFallback  = "profil"
	slugMaxBase   = 60
)

// slugBase turns "Hélène", "Le Gall" into "helene-le-gall".
func slugBase(firstName, lastName string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(firstName+" "+lastName))
	if err != nil {
		folded = firstName + " " + lastName
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}

	base := strings.Trim(b.String(), "-")
	if len(base) > slugMaxBase {
		base = strings.Trim(base[:slugMaxBase], "-")
	}
	if base == "" {
		return slugFallback
	}
	return base
}

func randomSlugSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLen]
}

func generateSlug(firstName, lastName string) string {
	return slugBase(firstName, lastName) + "-" + randomSlugSuffix()
}
