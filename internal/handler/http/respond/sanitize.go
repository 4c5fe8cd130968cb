package respond

import (
	"regexp"
)

var (
	// user:password@ inside a DSN
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... in key/value DSNs
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)(\S+)`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
