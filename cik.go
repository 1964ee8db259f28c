package nport

import "strings"

// CIK is an SEC Central Index Key in its canonical zero-padded ten-digit
// form, e.g. "0001166559".
type CIK string

// ParseCIK normalizes raw user input into a canonical CIK. It keeps digit
// characters only, rejects empty or longer-than-ten-digit input with
// EINVALID, and left-pads the rest with zeros.
func ParseCIK(raw string) (CIK, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" || len(digits) > 10 {
		return "", Errorf(EINVALID, "CIK must be up to 10 digits.")
	}
	return CIK(strings.Repeat("0", 10-len(digits)) + digits), nil
}

// String returns the zero-padded form.
func (c CIK) String() string { return string(c) }

// Strip returns the CIK without leading zeros, the form EDGAR archive
// folder paths use. An all-zero CIK strips to "0".
func (c CIK) Strip() string {
	s := strings.TrimLeft(string(c), "0")
	if s == "" {
		return "0"
	}
	return s
}
