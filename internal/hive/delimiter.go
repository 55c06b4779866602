package hive

import "fmt"

// OctalEscape returns the escaped form of a single-byte delimiter for use
// in Hive row-format clauses. Hive specifies delimiter characters as
// '\ooo' where ooo is a three-digit octal number between 000 and 177.
// Values may not be truncated ('\12' is wrong; '\012' is ok) nor
// zero-prefixed ('\0177' is wrong).
func OctalEscape(code int) (string, error) {
	if code < 0 || code > 0o177 {
		return "", &DelimiterRangeError{Code: code}
	}
	return fmt.Sprintf("\\%03o", code), nil
}
