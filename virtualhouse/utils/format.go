package utils

import (
	"fmt"
	"strings"
)

// Ptr returns a pointer to v, for the disgo option-struct fields.
func Ptr[T any](v T) *T {
	return &v
}

// FormatNumber renders 1234567 as "1,234,567".
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatMoney renders a currency amount with the in-game dollar sign.
func FormatMoney(n int64) string {
	return "$" + FormatNumber(n)
}

// ProgressBar renders a fixed-width bar like "[■■■□□□□□□□] 30%".
func ProgressBar(current, total int64, length int) string {
	progress := 0.0
	if total > 0 {
		progress = float64(current) / float64(total)
	}
	if progress > 1.0 {
		progress = 1.0
	}
	filled := int(progress * float64(length))

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < length; i++ {
		if i < filled {
			bar.WriteString("■")
		} else {
			bar.WriteString("□")
		}
	}
	bar.WriteString(fmt.Sprintf("] %d%%", int(progress*100)))
	return bar.String()
}
