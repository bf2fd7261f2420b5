package tokenizer

import "unicode"

// Combining vowel signs are Other_Alphabetic and superscript digits are No,
// both are valid inside names.
func isNameRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_Alphabetic) || unicode.IsNumber(r)
}

func isTagNameRune(r rune) bool {
	return isNameRune(r)
}

func isAttributeKeyRune(r rune) bool {
	return isNameRune(r) || r == '-' || r == '_'
}

func isUnquotedValueRune(r rune) bool {
	return !unicode.IsSpace(r) && r != '>' && r != '/'
}

func isTextRune(r rune) bool {
	return r != '<'
}
