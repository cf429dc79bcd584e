package command

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/inf.v0"
)

// ArgCount is how many command-line tokens an argument consumes.
type ArgCount int

const (
	Zero ArgCount = iota
	One
	Many
)

func (n ArgCount) String() string {
	switch n {
	case Zero:
		return "zero"
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("ArgCount(%d)", int(n))
	}
}

// Converter turns one command-line token into a typed value.
type Converter func(string) (any, error)

// Opt is a value that may be absent. The zero Opt is absent, which is
// different from Some(nil).
type Opt struct {
	value any
	ok    bool
}

func Some(v any) Opt { return Opt{value: v, ok: true} }

func (o Opt) Get() (any, bool) { return o.value, o.ok }

func (o Opt) IsSet() bool { return o.ok }

func (o Opt) String() string {
	if !o.ok {
		return "<absent>"
	}
	return fmt.Sprintf("%#v", o.value)
}

// Type is the base type of a parameter. Use one of the predefined types,
// Enum, or Custom together with Extra.Converter.
type Type struct {
	name    string
	convert Converter
	collect func([]any) any
	choices []string
	isBool  bool
}

func (t Type) String() string { return t.name }

func (t Type) isZero() bool { return t.name == "" }

func (t Type) supported() bool { return t.isBool || t.convert != nil }

var (
	Int = Type{
		name: "int",
		convert: func(s string) (any, error) {
			return strconv.Atoi(s)
		},
		collect: collectAs[int],
	}
	Float = Type{
		name: "float",
		convert: func(s string) (any, error) {
			return strconv.ParseFloat(s, 64)
		},
		collect: collectAs[float64],
	}
	String = Type{
		name:    "string",
		convert: func(s string) (any, error) { return s, nil },
		collect: collectAs[string],
	}
	Bool = Type{name: "bool", isBool: true}
	// Path values are cleaned with filepath.Clean.
	Path = Type{
		name:    "path",
		convert: func(s string) (any, error) { return filepath.Clean(s), nil },
		collect: collectAs[string],
	}
	// Decimal values are *inf.Dec.
	Decimal = Type{
		name: "decimal",
		convert: func(s string) (any, error) {
			d, ok := new(inf.Dec).SetString(s)
			if !ok {
				return nil, fmt.Errorf("invalid decimal %q", s)
			}
			return d, nil
		},
		collect: collectAs[*inf.Dec],
	}
)

// Enum is a string type restricted to choices. Input is matched
// case-insensitively and converted to the choice as written here.
func Enum(choices ...string) Type {
	return Type{
		name:    "enum",
		choices: choices,
		convert: func(s string) (any, error) {
			for _, c := range choices {
				if strings.EqualFold(s, c) {
					return c, nil
				}
			}
			return nil, fmt.Errorf("invalid choice %q (choose from %s)", s, strings.Join(choices, ", "))
		},
		collect: collectAs[string],
	}
}

// Custom names a type the parser cannot convert by itself. Parameters of a
// custom type must set Extra.Converter.
func Custom(name string) Type {
	return Type{name: name}
}

func collectAs[T any](vals []any) any {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i], _ = v.(T)
	}
	return out
}

func collectAny(vals []any) any { return vals }

// isDecimalNumber reports whether s is a number literal such as 1, 1.5, -2,
// 1e5 or inf.
func isDecimalNumber(s string) bool {
	if _, ok := new(inf.Dec).SetString(s); ok {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
