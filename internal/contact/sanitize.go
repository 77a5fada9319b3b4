package contact

import "strings"

var angleRemover = strings.NewReplacer("<", "", ">", "")

// SanitizeInput cleans a raw form value typed into the page: surrounding whitespace and the
// angle bracket characters are dropped, everything else is kept as typed.
func SanitizeInput(value string) string {
	return strings.TrimSpace(angleRemover.Replace(strings.TrimSpace(value)))
}
