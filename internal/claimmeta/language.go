package claimmeta

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/chainclaims/hub/internal/huberr"
)

// Language is a claim's language/script/region tag, the Go analogue of
// Language in attrs.py. Validity of the language/script/region name
// strings themselves (matched against the protobuf enum in the original)
// is not re-validated here: this module stores whatever three-part tag it
// is given and round-trips it through Langtag.
type Language struct {
	LanguageCode string
	Script       string
	Region       string
}

// Langtag formats the tag as language[-script][-region], matching the
// original's property of the same name.
func (l Language) Langtag() string {
	parts := make([]string, 0, 3)
	if l.LanguageCode != "" {
		parts = append(parts, l.LanguageCode)
	}
	if l.Script != "" {
		parts = append(parts, l.Script)
	}
	if l.Region != "" {
		parts = append(parts, l.Region)
	}
	return strings.Join(parts, "-")
}

// SetLangtag parses language[-script(4 alpha)][-region(2 alpha | 3
// digit)], matching the original's langtag setter exactly: the first
// segment is always the language; a second segment is the script only if
// it is 4 alphabetic characters; the following segment is the region if it
// is 2 alphabetic characters or 3 digits. Anything left over is an error.
func (l *Language) SetLangtag(langtag string) error {
	parts := strings.Split(langtag, "-")
	if len(parts) == 0 || parts[0] == "" {
		return huberr.Invalid("language tag %q: missing language segment", langtag)
	}
	l.LanguageCode, parts = parts[0], parts[1:]
	l.Script = ""
	l.Region = ""

	if len(parts) > 0 && len(parts[0]) == 4 && isAlpha(parts[0]) {
		l.Script, parts = parts[0], parts[1:]
	}
	if len(parts) > 0 && len(parts[0]) == 2 && isAlpha(parts[0]) {
		l.Region, parts = parts[0], parts[1:]
	} else if len(parts) > 0 && len(parts[0]) == 3 && isDigits(parts[0]) {
		l.Region, parts = parts[0], parts[1:]
	}

	if len(parts) > 0 {
		return huberr.Invalid("failed to parse language tag: %s", langtag)
	}
	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
