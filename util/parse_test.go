package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"25MB", 25 << 20},
		{"512KB", 512 << 10},
		{"512k", 512 << 10},
		{"1GB", 1 << 30},
		{"1.5MB", 3 << 19},
		{"48000", 48000},
		{"48,000B", 48000},
		{" 25 mb ", 25 << 20},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, -1); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSizeDefault(t *testing.T) {
	for _, in := range []string{"", "huge", "-3MB", "MB"} {
		if got := ParseSize(in, 7); got != 7 {
			t.Errorf("ParseSize(%q) = %d, want default", in, got)
		}
	}
}

func TestParseSizeReadsFormatBytes(t *testing.T) {
	for _, n := range []int64{900, 2048, 25 << 20} {
		if got := ParseSize(FormatBytes(n), -1); got != n {
			t.Errorf("ParseSize(FormatBytes(%d)) = %d", n, got)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input  string
		prefix int
		want   string
	}{
		{"eyJhbGciOiJIUzI1NiJ9.payload", 6, "eyJhbG***"},
		{"short", 6, "***"},
		{"", 6, "***"},
	}
	for _, tc := range tests {
		if got := MaskSecret(tc.input, tc.prefix); got != tc.want {
			t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.input, tc.prefix, got, tc.want)
		}
	}
}
