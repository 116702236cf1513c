package manifest

import "sort"

// Kind classifies how a box child element accumulates into Fields.
type Kind int

const (
	// KindScalar stores the element text; a repeated element overwrites the
	// earlier value.
	KindScalar Kind = iota
	// KindLocaleText stores text keyed by the mandatory language attribute.
	KindLocaleText
	// KindLocaleContent stores a title/body pair keyed by the optional
	// language attribute.
	KindLocaleContent
	// KindList stores the text of every child element in document order.
	KindList
)

// Field names with special accumulation rules. Every other field is a scalar.
const (
	FieldName                 = "name"
	FieldTitle                = "title"
	FieldContent              = "content"
	FieldVisibilityExceptions = "visibilityExceptions"

	FieldBoxType           = "boxType"
	FieldPosition          = "position"
	FieldController        = "controller"
	FieldCSSClassName      = "cssClassName"
	FieldShowHeader        = "showHeader"
	FieldVisibleEverywhere = "visibleEverywhere"
)

var fieldKinds = map[string]Kind{
	FieldName:                 KindLocaleText,
	FieldTitle:                KindLocaleText,
	FieldContent:              KindLocaleContent,
	FieldVisibilityExceptions: KindList,
}

// KindOf returns the accumulation kind for a field name.
func KindOf(field string) Kind {
	if kind, ok := fieldKinds[field]; ok {
		return kind
	}
	return KindScalar
}

// Content is one localized content block: a title and its body.
type Content struct {
	Title string
	Body  string
}

// Fields holds the parsed child elements of one box, split by kind.
type Fields struct {
	scalars  map[string]string
	text     map[string]map[string]string
	contents map[string]Content
	lists    map[string][]string
}

func newFields() Fields {
	return Fields{
		scalars:  map[string]string{},
		text:     map[string]map[string]string{},
		contents: map[string]Content{},
		lists:    map[string][]string{},
	}
}

// Scalar returns the text of a scalar field, or "" when absent.
func (f Fields) Scalar(field string) string {
	return f.scalars[field]
}

// HasScalar reports whether a scalar field was present.
func (f Fields) HasScalar(field string) bool {
	_, ok := f.scalars[field]
	return ok
}

// Text returns a copy of a locale-keyed text field.
func (f Fields) Text(field string) map[string]string {
	values := f.text[field]
	out := make(map[string]string, len(values))
	for language, value := range values {
		out[language] = value
	}
	return out
}

// Contents returns a copy of the content blocks keyed by language; the empty
// key holds the language-neutral block.
func (f Fields) Contents() map[string]Content {
	out := make(map[string]Content, len(f.contents))
	for language, content := range f.contents {
		out[language] = content
	}
	return out
}

// List returns a copy of a list field.
func (f Fields) List(field string) []string {
	return append([]string(nil), f.lists[field]...)
}

// ScalarNames returns the names of all scalar fields in sorted order.
func (f Fields) ScalarNames() []string {
	names := make([]string, 0, len(f.scalars))
	for name := range f.scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Fields) setScalar(field, value string) {
	f.scalars[field] = value
}

func (f Fields) setText(field, language, value string) {
	values, ok := f.text[field]
	if !ok {
		values = map[string]string{}
		f.text[field] = values
	}
	values[language] = value
}

func (f Fields) setContent(language string, content Content) {
	f.contents[language] = content
}

func (f Fields) setList(field string, values []string) {
	f.lists[field] = values
}
