// Package logutil holds small helpers for keeping log output bounded.
package logutil

// TruncateForLog caps s at maxLen characters, appending "..." when the
// value was cut. Useful for transcripts and tokens where a prefix is enough.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
