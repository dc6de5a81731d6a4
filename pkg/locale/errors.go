package locale

import "errors"

var (
	ErrEmptyLanguage = errors.New("locale: language cannot be empty")
	ErrNilPluralRule = errors.New("locale: plural rule cannot be nil")
	ErrNilTranslator = errors.New("locale: translator cannot be nil")
	ErrUnknownLocale = errors.New("locale: unknown locale")
)
