package pricing

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{
			name:  "plain number",
			input: "1234.56",
			want:  1234.56,
		},
		{
			name:  "comma thousands separator",
			input: "1,234.56",
			want:  1234.56,
		},
		{
			name:  "comma as decimal point",
			input: "12,50",
			want:  12.50,
		},
		{
			name:  "dollar prefix",
			input: "$4.20",
			want:  4.20,
		},
		{
			name:  "euro suffix with comma decimal",
			input: "3,14€",
			want:  3.14,
		},
		{
			name:  "space-grouped with comma decimal",
			input: "1 234,56",
			want:  1234.56,
		},
		{
			name:  "empty string",
			input: "",
			want:  0.0,
		},
		{
			name:  "no digits",
			input: "abc",
			want:  0.0,
		},
		{
			name:  "only separators",
			input: ".,",
			want:  0.0,
		},
		{
			name:  "rounds to six digits",
			input: "0.12345678",
			want:  0.123457,
		},
		{
			name:  "integer",
			input: "42",
			want:  42.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEquivalentFormats(t *testing.T) {
	// The same price in different locales must normalize identically
	if Normalize("1,234.56") != Normalize("1234.56") {
		t.Error("Expected thousands-separated and plain forms to match")
	}
	if Normalize("12,50") != Normalize("12.50") {
		t.Error("Expected comma-decimal and dot-decimal forms to match")
	}
}

func TestRound(t *testing.T) {
	if got := Round(13.0000004999); got != 13.0 {
		t.Errorf("Round(13.0000004999) = %v, want 13.0", got)
	}
	if got := Round(0.9999995); got != 1.0 {
		t.Errorf("Round(0.9999995) = %v, want 1.0", got)
	}
}
