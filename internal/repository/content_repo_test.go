package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain term untouched", "water cycle", "water cycle"},
		{"percent escaped", "100% done", "100!% done"},
		{"underscore escaped", "a_b", "a!_b"},
		{"escape char doubled", "wow!", "wow!!"},
		{"all metacharacters", "!%_", "!!!%!_"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLike(tt.input); got != tt.want {
				t.Errorf("escapeLike(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
