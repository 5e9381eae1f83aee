package locales

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeLocaleNotFound tags lookups for unregistered locale codes.
	TextCodeLocaleNotFound = "LOCALE_NOT_FOUND"
	// TextCodeInvalidConfiguration tags catalogue definitions that cannot be built.
	TextCodeInvalidConfiguration = "LOCALE_CONFIGURATION_INVALID"
)

// NotFoundError builds the error returned when a locale code is not registered.
func NotFoundError(code string) error {
	return goerrors.New(fmt.Sprintf("locales: locale %q not found", code), goerrors.CategoryNotFound).
		WithTextCode(TextCodeLocaleNotFound).
		WithMetadata(map[string]any{"locale": code})
}

func invalidConfiguration(format string, args ...any) error {
	return goerrors.New("locales: "+fmt.Sprintf(format, args...), goerrors.CategoryValidation).
		WithTextCode(TextCodeInvalidConfiguration)
}

// IsNotFound reports whether err signals an unregistered locale.
func IsNotFound(err error) bool {
	return hasTextCode(err, TextCodeLocaleNotFound)
}

// IsInvalidConfiguration reports whether err signals a malformed catalogue.
func IsInvalidConfiguration(err error) bool {
	return hasTextCode(err, TextCodeInvalidConfiguration)
}

func hasTextCode(err error, code string) bool {
	var target *goerrors.Error
	if !errors.As(err, &target) {
		return false
	}
	return target.TextCode == code
}
