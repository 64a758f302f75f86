// Package jsonfmt pretty-prints, minifies and validates JSON.
package jsonfmt

import (
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/jsonvalue"
)

// DefaultIndent is the number of spaces per level.
const DefaultIndent = 2

// Format re-indents input with indent spaces per level (0 uses a tab).
func Format(input string, indent int) (string, error) {
	v, err := parse(input)
	if err != nil {
		return "", err
	}
	unit := "\t"
	if indent > 0 {
		unit = strings.Repeat(" ", indent)
	}
	out, err := v.Indent(unit)
	return string(out), err
}

// Minify strips all insignificant whitespace.
func Minify(input string) (string, error) {
	v, err := parse(input)
	if err != nil {
		return "", err
	}
	out, err := v.MarshalJSON()
	return string(out), err
}

// Validate reports whether input is one well-formed JSON document.
func Validate(input string) error {
	_, err := parse(input)
	return err
}

func parse(input string) (jsonvalue.Value, error) {
	if strings.TrimSpace(input) == "" {
		return jsonvalue.Value{}, apperr.ErrEmptyInput
	}
	v, err := jsonvalue.Parse([]byte(input))
	if err != nil {
		return jsonvalue.Value{}, apperr.Validation(err, err.Error())
	}
	return v, nil
}
