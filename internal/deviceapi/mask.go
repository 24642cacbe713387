package deviceapi

import "strings"

// MaskRune is the placeholder character the firmware uses when returning
// secret values in GET /api/config responses.
const MaskRune = '●'

// MaskSecret reproduces the firmware's masking of a secret for display:
// empty stays empty, short secrets become a fixed run of placeholder
// characters, and long secrets show the first and last two characters
// around a placeholder run.
func MaskSecret(secret string) string {
	switch {
	case len(secret) == 0:
		return ""
	case len(secret) <= 4:
		return "●●●●"
	case len(secret) <= 8:
		return "●●●●●●●●"
	default:
		return secret[:2] + "●●●●●●●●" + secret[len(secret)-2:]
	}
}

// IsMaskedValue reports whether a string looks like one of the firmware's
// masked forms rather than a real secret. This guards against a UI
// re-render "editing" a secret field by writing its own display value back.
func IsMaskedValue(value string) bool {
	if value == "" {
		return false
	}

	runes := []rune(value)

	// Pure placeholder run (the short-secret forms)
	allMask := true
	for _, r := range runes {
		if r != MaskRune {
			allMask = false
			break
		}
	}
	if allMask {
		return true
	}

	// Long-secret form: two plain characters either side of a placeholder run
	if len(runes) >= 8 && strings.ContainsRune(value, MaskRune) {
		middle := runes[2 : len(runes)-2]
		for _, r := range middle {
			if r != MaskRune {
				return false
			}
		}
		return runes[0] != MaskRune && runes[len(runes)-1] != MaskRune
	}

	return false
}
