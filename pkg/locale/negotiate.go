package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// Negotiate returns the entry of available that best matches an
// Accept-Language header, honoring quality values and regional variants.
// It returns the first available entry when nothing matches and "" when
// available is empty.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Available: ["pl", "en", "de"]
// Returns: "en"
func Negotiate(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	header = strings.TrimSpace(header)
	if header == "" {
		return available[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
		if i := strings.LastIndexByte(header, ','); i > 0 {
			header = header[:i]
		}
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, len(available))
	for i, a := range available {
		supported[i] = language.Make(strings.ReplaceAll(a, "_", "-"))
	}

	_, index, conf := language.NewMatcher(supported).Match(desired...)
	if conf == language.No || index < 0 || index >= len(available) {
		return available[0]
	}
	return available[index]
}
