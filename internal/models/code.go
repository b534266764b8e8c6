package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParsedCode is the result of scanning a free-form apartment code.
type ParsedCode struct {
	// Code is the uppercased input.
	Code  string
	Floor uint16
	Door  string
	// FloorErr is set when the floor digits could not be parsed. Floor is 0 in
	// that case and the rest of the result is still usable.
	FloorErr error
}

// ParseCode splits a free-form apartment code into floor and door.
//
// Numeric characters make up the floor and letters make up the door, each in
// the order they appear; anything else is ignored. "1A", "a1" and "1-A-" all
// parse to floor 1, door "A".
func ParseCode(raw string) ParsedCode {
	upper := strings.ToUpper(raw)

	var digits, letters strings.Builder
	for _, r := range upper {
		switch {
		case unicode.IsNumber(r):
			digits.WriteRune(r)
		case unicode.IsLetter(r):
			letters.WriteRune(r)
		}
	}

	parsed := ParsedCode{
		Code: upper,
		Door: letters.String(),
	}

	floor, err := strconv.ParseUint(digits.String(), 10, 16)
	if err != nil {
		parsed.FloorErr = fmt.Errorf("failed to parse floor %q of code %q: %w", digits.String(), raw, err)
		return parsed
	}
	parsed.Floor = uint16(floor)

	return parsed
}

// FormatCode composes the canonical code "{floor}{door}" with door uppercased.
func FormatCode(floor uint16, door string) string {
	return strconv.FormatUint(uint64(floor), 10) + strings.ToUpper(door)
}
