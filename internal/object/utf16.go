package object

import "unicode/utf16"

func utf16Encode(runes []rune) []uint16 {
	return utf16.Encode(runes)
}

func utf16Decode(units []uint16) string {
	return string(utf16.Decode(units))
}
