package i18n

import "errors"

var (
	ErrEmptyLanguage  = errors.New("i18n: language cannot be empty")
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
	ErrInvalidFile    = errors.New("i18n: invalid translation file")
	ErrMissingKey     = errors.New("i18n: message not found")
	ErrNilLocales     = errors.New("i18n: locale registry cannot be nil")
	ErrNilStore       = errors.New("i18n: message store cannot be nil")
)
