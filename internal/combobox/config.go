package combobox

import (
	"fmt"
	"strings"

	apperrors "multicombo/internal/errors"
)

// Autocomplete selects the filtering policy applied while the user types.
type Autocomplete string

const (
	// AutocompleteNone behaves like inline for the current option but is the
	// value reported when no autocomplete was configured.
	AutocompleteNone Autocomplete = "false"
	// AutocompleteList hides every option whose label does not contain the search text.
	AutocompleteList Autocomplete = "list"
	// AutocompleteInline keeps the full list and moves the current option to the first match.
	AutocompleteInline Autocomplete = "inline"
)

// ParseAutocomplete maps a configuration string onto an Autocomplete mode.
func ParseAutocomplete(s string) (Autocomplete, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "none", "off":
		return AutocompleteNone, nil
	case "list":
		return AutocompleteList, nil
	case "inline":
		return AutocompleteInline, nil
	}
	return "", apperrors.New(apperrors.CodeConfigurationError,
		fmt.Sprintf("unknown autocomplete mode %q (want list, inline or false)", s), nil)
}

// Config holds the recognized control options.
type Config struct {
	Name         string // form field name used for the reported key/value pairs
	Placeholder  string
	Multiple     bool
	Tags         bool // requires Multiple
	Autocomplete Autocomplete
	Required     bool
	Disabled     bool
}

// Validate reports invalid option combinations. These are fatal: a control
// with an invalid configuration never becomes interactive.
func (c Config) Validate() error {
	if c.Tags && !c.Multiple {
		return apperrors.New(apperrors.CodeConfigurationError,
			"tags only work with multiple=true", nil)
	}
	if _, err := ParseAutocomplete(string(c.Autocomplete)); err != nil {
		return err
	}
	return nil
}

func (c Config) filtersList() bool {
	return c.Autocomplete == AutocompleteList
}
