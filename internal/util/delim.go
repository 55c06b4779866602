package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseDelimiter converts a delimiter specification into its byte code.
// Accepted forms:
//
//	a single character:  ","  "|"
//	an escape sequence:  \t  \n  \r  \b  \\  \'  \"  \0
//	octal:               \0ooo   (e.g. \0011 for tab)
//	hex:                 \0xhh   (e.g. \0x09 for tab)
func ParseDelimiter(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty delimiter specification")
	}

	if !strings.HasPrefix(s, `\`) {
		r, size := utf8.DecodeRuneInString(s)
		if size != len(s) || r > 127 {
			return 0, fmt.Errorf("delimiter %q must be a single 7-bit character", s)
		}
		return int(r), nil
	}

	switch s {
	case `\t`:
		return '\t', nil
	case `\n`:
		return '\n', nil
	case `\r`:
		return '\r', nil
	case `\b`:
		return '\b', nil
	case `\\`:
		return '\\', nil
	case `\'`:
		return '\'', nil
	case `\"`:
		return '"', nil
	case `\0`:
		return 0, nil
	}

	if rest, ok := strings.CutPrefix(s, `\0x`); ok {
		n, err := strconv.ParseInt(rest, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex delimiter %q: %w", s, err)
		}
		return checkRange(s, int(n))
	}
	if rest, ok := strings.CutPrefix(s, `\0`); ok {
		n, err := strconv.ParseInt(rest, 8, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid octal delimiter %q: %w", s, err)
		}
		return checkRange(s, int(n))
	}

	return 0, fmt.Errorf("unrecognized delimiter specification %q", s)
}

func checkRange(spec string, code int) (int, error) {
	if code < 0 || code > 127 {
		return 0, fmt.Errorf("delimiter %q is out of the 7-bit range", spec)
	}
	return code, nil
}
