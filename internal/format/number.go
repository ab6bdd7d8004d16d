package format

import "strings"

// FormatNumberString inserts thousands separators into a decimal string.
// A leading minus sign is preserved; non-numeric input is returned as is.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	if len(digits) <= 3 || strings.Trim(digits, "0123456789") != "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(digits)/3)
	if neg {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
