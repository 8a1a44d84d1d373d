package locale

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code        string
		wantCode    string
		instruction string
	}{
		// Supported codes
		{"de", "de", "Antworte auf Deutsch."},
		{"en", "en", "Answer in English."},
		{"es", "es", "Responde en español."},
		{"fr", "fr", "Réponds en français."},
		{"it", "it", "Rispondi in italiano."},
		// Case and whitespace
		{"DE", "de", "Antworte auf Deutsch."},
		{" fr ", "fr", "Réponds en français."},
		// Regional variants
		{"de-AT", "de", "Antworte auf Deutsch."},
		{"en_US", "en", "Answer in English."},
		{"EN_us", "en", "Answer in English."},
		{"es-419", "es", "Responde en español."},
		{"pt-BR", "en", "Answer in English."},
		// Fallback
		{"", "en", "Answer in English."},
		{"ru", "en", "Answer in English."},
		{"zh", "en", "Answer in English."},
		{"not a locale", "en", "Answer in English."},
		{"???", "en", "Answer in English."},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := Resolve(tt.code)
			if got.Code != tt.wantCode {
				t.Errorf("Resolve(%q).Code = %q, want %q", tt.code, got.Code, tt.wantCode)
			}
			if got.Instruction != tt.instruction {
				t.Errorf("Resolve(%q).Instruction = %q, want %q", tt.code, got.Instruction, tt.instruction)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	want := []string{"de", "en", "es", "fr", "it"}
	if got := Default().Supported(); !reflect.DeepEqual(got, want) {
		t.Errorf("Supported() = %v, want %v", got, want)
	}
}

func TestWithFallback(t *testing.T) {
	de, err := Default().WithFallback("de")
	if err != nil {
		t.Fatalf("WithFallback(de) unexpected error: %v", err)
	}

	if got := de.Resolve("ru"); got.Code != "de" || got.Instruction != "Antworte auf Deutsch." {
		t.Errorf("Resolve(ru) with de fallback = %+v", got)
	}
	if got := de.Resolve("en"); got.Code != "en" {
		t.Errorf("Resolve(en) with de fallback = %+v, want en", got)
	}
	// The default table is untouched.
	if got := Default().Fallback(); got != Fallback {
		t.Errorf("Default().Fallback() = %q, want %q", got, Fallback)
	}

	if _, err := Default().WithFallback("ru"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("WithFallback(ru) error = %v, want ErrUnsupported", err)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"de", true},
		{"it-CH", true},
		{"ru", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Default().IsSupported(tt.code); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError bool
	}{
		{
			name: "valid table",
			data: "fallback: de\nlocales:\n  de: \"Antworte auf Deutsch.\"\n",
		},
		{
			name:        "empty table",
			data:        "fallback: en\n",
			expectError: true,
		},
		{
			name:        "blank instruction",
			data:        "locales:\n  en: \"  \"\n",
			expectError: true,
		},
		{
			name:        "fallback not in table",
			data:        "fallback: fr\nlocales:\n  en: \"Answer in English.\"\n",
			expectError: true,
		},
		{
			name:        "malformed yaml",
			data:        "locales: [",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if tt.expectError && err == nil {
				t.Errorf("Parse() should have returned error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Parse() unexpected error: %v", err)
			}
		})
	}
}
