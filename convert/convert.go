// Package convert implements the scalar-to-typed-value conversion layer
// referenced by §6: every Value node is a string in the tree; decoding
// to int/float/bool and encoding back happens here, outside the core.
package convert

import (
	"strconv"

	"github.com/pkg/errors"
)

// Error wraps a failed scalar conversion with the original string and
// target type name, so the Node boundary can attach it to an AccessError
// without losing the underlying cause.
type Error struct {
	Value  string
	Target string
	Cause  error
}

func (e *Error) Error() string {
	return errors.Wrapf(e.Cause, "cannot convert %q to %s", e.Value, e.Target).Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// ToString is the identity conversion; every scalar is already a string.
func ToString(s string) (string, error) { return s, nil }

// FromString is the identity encoding.
func FromString(v string) string { return v }

// ToInt decodes a base-10 (or 0x/0o/0b prefixed) integer. As with
// strconv.ParseInt in base 0, a leading "0" also selects octal and
// underscores between digits are accepted.
func ToInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, &Error{Value: s, Target: "int", Cause: err}
	}
	return v, nil
}

// FromInt encodes an integer as its decimal scalar form.
func FromInt(v int64) string { return strconv.FormatInt(v, 10) }

// ToFloat decodes a float, including "nan"/"inf"/"-inf".
func ToFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &Error{Value: s, Target: "float", Cause: err}
	}
	return v, nil
}

// FromFloat encodes a float in Go's shortest round-trip form.
func FromFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// ToBool decodes "true"/"false" in lower, title or upper case, the
// common YAML aliases "yes"/"no"/"on"/"off" in lower or title case, and
// any other form strconv.ParseBool accepts ("1", "t", "0", "f", ...).
// Other casings, such as "YES" or "tRue", are rejected.
func ToBool(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE", "yes", "Yes", "on", "On":
		return true, nil
	case "false", "False", "FALSE", "no", "No", "off", "Off":
		return false, nil
	default:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return false, &Error{Value: s, Target: "bool", Cause: err}
		}
		return v, nil
	}
}

// FromBool encodes a bool as "true"/"false".
func FromBool(v bool) string { return strconv.FormatBool(v) }

// Decoder is implemented by user-defined types that want to decode
// themselves from a scalar's string content through Node.Decode,
// extending the conversion layer beyond the four built-in types.
type Decoder interface {
	DecodeSTYML(s string) error
}
