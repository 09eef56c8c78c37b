package utils

import "strings"

// MaskEmail obscures the local part of an email address so it can appear in
// logs: "dana@example.com" becomes "d***@example.com". Anything that does
// not look like an email is fully masked.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	if len(local) <= 1 {
		return local + "***@" + domain
	}
	return local[:1] + "***@" + domain
}
