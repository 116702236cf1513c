// Package errors provides structured error handling for the box importer.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Manifest errors
	CodeManifestMalformed       Code = "MANIFEST_MALFORMED"
	CodeManifestMissingLanguage Code = "MANIFEST_MISSING_LANGUAGE"
	CodeManifestEmptyChild      Code = "MANIFEST_EMPTY_CHILD"
	CodeManifestMissingID       Code = "MANIFEST_MISSING_IDENTIFIER"

	// Box errors
	CodeBoxUnknownPosition     Code = "BOX_UNKNOWN_POSITION"
	CodeBoxUnknownType         Code = "BOX_UNKNOWN_TYPE"
	CodeBoxMissingController   Code = "BOX_MISSING_CONTROLLER"
	CodeBoxMissingContent      Code = "BOX_MISSING_CONTENT"
	CodeBoxExpectedNeutral     Code = "BOX_EXPECTED_LANGUAGE_NEUTRAL_CONTENT"
	CodeBoxMixedContent        Code = "BOX_MIXED_CONTENT"
	CodeBoxMissingName         Code = "BOX_MISSING_NAME"
	CodeBoxInvalidLanguageCode Code = "BOX_INVALID_LANGUAGE_CODE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
