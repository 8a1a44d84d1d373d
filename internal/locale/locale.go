// Package locale resolves request language codes to output-language instructions.
package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Fallback is the locale used when a request carries no usable language.
const Fallback = "en"

// ErrUnsupported is returned when a fallback is not part of the table.
var ErrUnsupported = errors.New("unsupported locale")

//go:embed locales.yaml
var embeddedTable []byte

var defaultTable = mustParse(embeddedTable)

// Locale is a resolved output language.
type Locale struct {
	Code        string
	Instruction string
}

// Table maps base language codes to instruction phrases.
// A Table is read-only after construction and safe for concurrent use.
type Table struct {
	phrases  map[string]string
	fallback string
}

type tableFile struct {
	Fallback string            `yaml:"fallback"`
	Locales  map[string]string `yaml:"locales"`
}

// Parse reads a locale table from YAML.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse locale table: %w", err)
	}
	if len(f.Locales) == 0 {
		return nil, fmt.Errorf("locale table is empty")
	}

	phrases := make(map[string]string, len(f.Locales))
	for code, phrase := range f.Locales {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			return nil, fmt.Errorf("locale %q has no instruction", code)
		}
		phrases[strings.ToLower(strings.TrimSpace(code))] = phrase
	}

	t := &Table{phrases: phrases}
	fallback := f.Fallback
	if fallback == "" {
		fallback = Fallback
	}
	return t.WithFallback(fallback)
}

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the embedded locale table.
func Default() *Table {
	return defaultTable
}

// Resolve resolves code against the embedded table.
func Resolve(code string) Locale {
	return defaultTable.Resolve(code)
}

// WithFallback returns a copy of the table using code as its fallback.
func (t *Table) WithFallback(code string) (*Table, error) {
	base, ok := normalize(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	if _, ok := t.phrases[base]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	return &Table{phrases: t.phrases, fallback: base}, nil
}

// Fallback returns the code used for absent or unsupported languages.
func (t *Table) Fallback() string {
	return t.fallback
}

// Resolve maps a request language to a supported locale.
// Regional variants ("de-AT", "en_US") reduce to their base language.
// Empty, malformed and unsupported codes resolve to the fallback.
func (t *Table) Resolve(code string) Locale {
	if base, ok := normalize(code); ok {
		if phrase, ok := t.phrases[base]; ok {
			return Locale{Code: base, Instruction: phrase}
		}
	}
	return Locale{Code: t.fallback, Instruction: t.phrases[t.fallback]}
}

// IsSupported reports whether code resolves to itself rather than the fallback.
func (t *Table) IsSupported(code string) bool {
	base, ok := normalize(code)
	if !ok {
		return false
	}
	_, ok = t.phrases[base]
	return ok
}

// Supported returns the supported base codes, sorted.
func (t *Table) Supported() []string {
	codes := make([]string, 0, len(t.phrases))
	for code := range t.phrases {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// normalize reduces a language tag to its lowercase base language.
func normalize(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	return strings.ToLower(base.String()), true
}
