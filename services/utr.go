package services

import (
	"regexp"
	"strings"
)

// UTR format: 8 to 20 alphanumeric characters after trimming
var utrPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,20}$`)

// NormalizeUTR trims and uppercases a user-entered transaction reference
// and validates its format. It performs no I/O; failures come back as a
// FieldError suitable for inline display.
func NormalizeUTR(raw string) (string, error) {
	utr := strings.ToUpper(strings.TrimSpace(raw))

	if utr == "" {
		return "", &FieldError{Field: "utr", Message: "Enter the UTR shown in your UPI app"}
	}
	if len(utr) < 8 {
		return "", &FieldError{Field: "utr", Message: "UTR must be at least 8 characters"}
	}
	if len(utr) > 20 {
		return "", &FieldError{Field: "utr", Message: "UTR must be at most 20 characters"}
	}
	if !utrPattern.MatchString(utr) {
		return "", &FieldError{Field: "utr", Message: "UTR may only contain letters and digits"}
	}

	return utr, nil
}
