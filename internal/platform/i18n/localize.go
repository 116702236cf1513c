// Package i18n turns locale-keyed manifest values into storage-ready
// localized values.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when a resolver is built without an explicit locale.
const DefaultLocale = "en"

var (
	// ErrNoValues reports that a required localized field has no entries.
	ErrNoValues = errors.New("no localized values")
	// ErrInvalidLanguage reports a configured locale that is not a valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid language code")
	// ErrDuplicateLanguage reports two language codes with the same canonical form.
	ErrDuplicateLanguage = errors.New("duplicate language code")
)

// Value is a localized text ready for storage. Default is the text used where
// a single column is stored; Localized maps canonical language tags to text.
// A language-neutral value is stored under the empty key.
type Value struct {
	Default   string
	Localized map[string]string
}

// IsMultilingual reports whether the value carries more than the neutral entry.
func (v Value) IsMultilingual() bool {
	if len(v.Localized) > 1 {
		return true
	}
	_, neutral := v.Localized[""]
	return len(v.Localized) == 1 && !neutral
}

// Locales returns the stored locale keys in sorted order.
func (v Value) Locales() []string {
	keys := make([]string, 0, len(v.Localized))
	for key := range v.Localized {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Localizer converts raw locale→text maps into storage-ready values.
type Localizer interface {
	// Values canonicalizes values; when required is true an empty map fails
	// with ErrNoValues.
	Values(values map[string]string, required bool) (Value, error)
}

// Resolver is the default Localizer. It canonicalizes language codes and
// picks the default text by matching against a preferred locale.
type Resolver struct {
	preferred language.Tag
}

// NewResolver builds a Resolver preferring defaultLocale when picking the
// default text.
func NewResolver(defaultLocale string) (*Resolver, error) {
	locale := strings.TrimSpace(defaultLocale)
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLanguage, defaultLocale, err)
	}
	return &Resolver{preferred: tag}, nil
}

// Canonical returns the canonical form of a language code. The empty code
// stays empty and means "no specific language". Codes that are not known
// BCP 47 tags are kept as written.
func Canonical(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

// Values implements Localizer.
func (r *Resolver) Values(values map[string]string, required bool) (Value, error) {
	if len(values) == 0 {
		if required {
			return Value{}, ErrNoValues
		}
		return Value{}, nil
	}

	localized := make(map[string]string, len(values))
	for code, text := range values {
		canonical := Canonical(code)
		if _, dup := localized[canonical]; dup {
			return Value{}, fmt.Errorf("%w %q: duplicate of %q", ErrDuplicateLanguage, code, canonical)
		}
		localized[canonical] = text
	}

	value := Value{Localized: localized}
	if neutral, ok := localized[""]; ok {
		value.Default = neutral
		return value, nil
	}
	value.Default = localized[r.match(value.Locales())]
	return value, nil
}

// match returns the locale among candidates that best serves the preferred
// tag. The first candidate is the fallback when nothing matches.
func (r *Resolver) match(candidates []string) string {
	tags := make([]language.Tag, 0, len(candidates))
	for _, candidate := range candidates {
		tags = append(tags, language.Make(candidate))
	}
	_, index, _ := language.NewMatcher(tags).Match(r.preferred)
	return candidates[index]
}
