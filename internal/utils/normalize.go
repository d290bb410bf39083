package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer returns the Unicode normalization function for a form name
// ("nfc", "nfd", "nfkc", "nfkd"). An empty name or "none" returns nil.
func Normalizer(name string) (func(string) string, error) {
	var form norm.Form
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "nfc":
		form = norm.NFC
	case "nfd":
		form = norm.NFD
	case "nfkc":
		form = norm.NFKC
	case "nfkd":
		form = norm.NFKD
	default:
		return nil, fmt.Errorf("unknown normalization form %q", name)
	}
	return form.String, nil
}
