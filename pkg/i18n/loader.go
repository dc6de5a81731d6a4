package i18n

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// WithJSON loads messages for a language and namespace from a JSON document.
// The document is an object whose leaves are ICU message sources; nested
// objects are flattened with dots.
//
//	{"greeting": "Hello {name}!", "cart": {"items": "{n, plural, one {# item} other {# items}}"}}
func WithJSON(lang, namespace string, data []byte) Option {
	return func(i *I18n) error {
		var messages map[string]any
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("%w: parsing %s/%s json: %s", ErrInvalidFile, lang, namespace, err)
		}
		return i.addMessages(lang, namespace, messages)
	}
}

// WithYAML loads messages for a language and namespace from a YAML document.
// Block scalars keep multi-line messages readable:
//
//	cart:
//	  items: >-
//	    {n, plural,
//	      one {# item}
//	      other {# items}}
func WithYAML(lang, namespace string, data []byte) Option {
	return func(i *I18n) error {
		var messages map[string]any
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("%w: parsing %s/%s yaml: %s", ErrInvalidFile, lang, namespace, err)
		}
		return i.addMessages(lang, namespace, messages)
	}
}

func (i *I18n) addMessages(lang, namespace string, messages map[string]any) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if namespace == "" {
		return ErrEmptyNamespace
	}
	for key, source := range flatten(messages, "") {
		i.sources[buildKey(lang, namespace, key)] = source
	}
	i.seen[lang] = true
	return nil
}

// flatten turns nested maps into dot-separated keys. Scalar leaves that are
// not strings (YAML numbers and booleans) are stringified.
func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = cast.ToString(v)
		}
	}

	return result
}
