package format

import (
	"strings"

	"golang.org/x/text/language"
)

// Digits maps ASCII digits 0-9 to a numbering system's glyphs.
type Digits [10]rune

var (
	Latin       = Digits{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	ArabicIndic = Digits{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}
	Persian     = Digits{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}
)

// Localize replaces every ASCII digit in s, one rune per digit. All other
// runes pass through unchanged.
func (d Digits) Localize(s string) string {
	if d == Latin {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return d[r-'0']
		}
		return r
	}, s)
}

// DigitsFor picks the numbering system for a language tag. An explicit
// -u-nu- extension wins over the language default.
func DigitsFor(tag language.Tag) Digits {
	switch tag.TypeForKey("nu") {
	case "latn":
		return Latin
	case "arab":
		return ArabicIndic
	case "arabext":
		return Persian
	}

	base, _ := tag.Base()
	switch base.String() {
	case "fa":
		return Persian
	case "ar":
		return ArabicIndic
	default:
		return Latin
	}
}

// DigitsForLanguage parses a BCP 47 tag and returns its digits, falling
// back to Latin for unparseable input.
func DigitsForLanguage(lang string) Digits {
	tag, err := language.Parse(lang)
	if err != nil {
		return Latin
	}
	return DigitsFor(tag)
}
