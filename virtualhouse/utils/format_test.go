package utils

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-50000, "-50,000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0, 100, 10); got != "[□□□□□□□□□□] 0%" {
		t.Errorf("empty bar = %q", got)
	}
	if got := ProgressBar(100, 100, 10); got != "[■■■■■■■■■■] 100%" {
		t.Errorf("full bar = %q", got)
	}
	if got := ProgressBar(250, 100, 10); got != "[■■■■■■■■■■] 100%" {
		t.Errorf("overflow must clamp, got %q", got)
	}
}
