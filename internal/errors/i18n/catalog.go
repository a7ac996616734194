// Package i18n provides localized catalogs for user-facing error messages.
package i18n

import (
	"strings"
	"text/template"
)

// Code mirrors the machine-readable codes from internal/errors as plain
// strings to avoid an import cycle.
type Code = string

// Catalog holds localized message templates keyed by error code.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code with the provided metadata.
// Unknown codes and template failures fall back to a generic message so a
// missing translation never breaks an error response.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	message, ok := c.messages[code]
	if !ok {
		return genericMessage
	}
	if !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := template.New(code).Parse(message)
	if err != nil {
		return message
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, metadata); err != nil {
		return message
	}
	return out.String()
}

const genericMessage = "Something went wrong"

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en-us", "en", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
