package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/boxsync/internal/platform/errors"
	"github.com/louisbranch/boxsync/internal/platform/i18n"
	"github.com/louisbranch/boxsync/internal/services/box/manifest"
)

// Normalize validates a parsed manifest item and converts it into a Box.
//
// Checks run in a fixed order: position, type-specific requirements, then
// localized fields. The first violation is returned as an *apperrors.Error
// naming the box identifier.
func Normalize(item manifest.Item, localizer i18n.Localizer) (Box, error) {
	if localizer == nil {
		return Box{}, fmt.Errorf("localizer is required")
	}
	fields := item.Fields
	identifier := item.Identifier
	boxType := Type(fields.Scalar(manifest.FieldBoxType))
	position := Position(fields.Scalar(manifest.FieldPosition))

	if !position.Valid() {
		return Box{}, boxError(apperrors.CodeBoxUnknownPosition, identifier,
			fmt.Sprintf("Unknown box position '%s' for box '%s'", position, identifier))
	}

	box := Box{
		Identifier:        identifier,
		Type:              boxType,
		Position:          position,
		VisibleEverywhere: truthy(fields.Scalar(manifest.FieldVisibleEverywhere)),
		CSSClassName:      fields.Scalar(manifest.FieldCSSClassName),
		ShowHeader:        truthy(fields.Scalar(manifest.FieldShowHeader)),
		OriginIsSystem:    true,
	}

	switch {
	case boxType == TypeSystem:
		controller := fields.Scalar(manifest.FieldController)
		if controller == "" {
			return Box{}, boxError(apperrors.CodeBoxMissingController, identifier,
				fmt.Sprintf("Missing required element 'controller' for 'system'-type box '%s'", identifier))
		}
		box.Controller = controller
	case boxType.HasContent():
		contents, multilingual, err := normalizeContents(identifier, fields.Contents())
		if err != nil {
			return Box{}, err
		}
		box.Contents = contents
		box.IsMultilingual = multilingual
	default:
		return Box{}, boxError(apperrors.CodeBoxUnknownType, identifier,
			fmt.Sprintf("Unknown type '%s' for box '%s'", boxType, identifier))
	}

	name, err := localizer.Values(fields.Text(manifest.FieldName), true)
	if err != nil {
		return Box{}, localizedFieldError(identifier, manifest.FieldName, err)
	}
	box.Name = name

	titles, err := canonicalKeys(fields.Text(manifest.FieldTitle))
	if err != nil {
		return Box{}, localizedFieldError(identifier, manifest.FieldTitle, err)
	}
	box.Titles = titles

	if exceptions := fields.List(manifest.FieldVisibilityExceptions); len(exceptions) > 0 {
		box.VisibilityExceptions = exceptions
	}

	return box, nil
}

// normalizeContents enforces the content layout rules: one language-neutral
// block, or several blocks that all carry a language.
func normalizeContents(identifier string, raw map[string]manifest.Content) (map[string]Content, bool, error) {
	if len(raw) == 0 {
		return nil, false, boxError(apperrors.CodeBoxMissingContent, identifier,
			fmt.Sprintf("Missing required 'content' element(s) for box '%s'", identifier))
	}

	_, hasNeutral := raw[""]
	multilingual := false
	if len(raw) == 1 {
		if !hasNeutral {
			return nil, false, boxError(apperrors.CodeBoxExpectedNeutral, identifier,
				fmt.Sprintf("Expected one 'content' element without a 'language' attribute for box '%s'", identifier))
		}
	} else {
		multilingual = true
		if hasNeutral {
			return nil, false, boxError(apperrors.CodeBoxMixedContent, identifier,
				fmt.Sprintf("Cannot mix 'content' elements with and without 'language' attribute for box '%s'", identifier))
		}
	}

	contents := make(map[string]Content, len(raw))
	for language, block := range raw {
		canonical := i18n.Canonical(language)
		if _, dup := contents[canonical]; dup {
			return nil, false, localizedFieldError(identifier, manifest.FieldContent, duplicateLanguage(language, canonical))
		}
		contents[canonical] = Content{Title: block.Title, Body: block.Body}
	}
	return contents, multilingual, nil
}

func canonicalKeys(values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for language, value := range values {
		canonical := i18n.Canonical(language)
		if _, dup := out[canonical]; dup {
			return nil, duplicateLanguage(language, canonical)
		}
		out[canonical] = value
	}
	return out, nil
}

func duplicateLanguage(language, canonical string) error {
	return fmt.Errorf("%w %q: duplicate of %q", i18n.ErrDuplicateLanguage, language, canonical)
}

func localizedFieldError(identifier, field string, err error) error {
	if errors.Is(err, i18n.ErrNoValues) {
		return boxError(apperrors.CodeBoxMissingName, identifier,
			fmt.Sprintf("Missing required element '%s' for box '%s'", field, identifier))
	}
	return &apperrors.Error{
		Code:     apperrors.CodeBoxInvalidLanguageCode,
		Message:  fmt.Sprintf("Invalid language for '%s' element (box '%s')", field, identifier),
		Metadata: map[string]string{"identifier": identifier, "field": field},
		Cause:    err,
	}
}

func boxError(code apperrors.Code, identifier, message string) error {
	return apperrors.WithMetadata(code, message, map[string]string{"identifier": identifier})
}

// truthy mirrors how manifest flags are written: absent, empty, or "0" is false.
func truthy(value string) bool {
	return value != "" && value != "0"
}
