package deviceapi

import "testing"

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"empty", "", ""},
		{"short", "abc", "●●●●"},
		{"four chars", "abcd", "●●●●"},
		{"medium", "abcdefg", "●●●●●●●●"},
		{"eight chars", "abcdefgh", "●●●●●●●●"},
		{"long", "supersecrettoken", "su●●●●●●●●en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskSecret(tt.secret); got != tt.want {
				t.Errorf("MaskSecret(%q) = %q, want %q", tt.secret, got, tt.want)
			}
		})
	}
}

func TestIsMaskedValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty is not masked", "", false},
		{"short mask", "●●●●", true},
		{"medium mask", "●●●●●●●●", true},
		{"long mask with affixes", "su●●●●●●●●en", true},
		{"real password", "hunter2hunter2", false},
		{"password with one dot", "pass●word", false},
		{"round trip short", MaskSecret("abc"), true},
		{"round trip long", MaskSecret("sk-somethinglong"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMaskedValue(tt.value); got != tt.want {
				t.Errorf("IsMaskedValue(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
