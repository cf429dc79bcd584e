package command

import (
	"maps"

	"gopkg.in/inf.v0"
)

// Binding is a positional argument and its converted value.
type Binding struct {
	Name  string
	Value any
}

// Result is what Parse produced for a command: converted positionals in
// declaration order and flag values keyed by destination name. Absent
// optional values are nil.
type Result struct {
	Positionals []Binding
	Flags       map[string]any
	LessLogging bool
}

// All merges positionals and flags into one map.
func (r *Result) All() map[string]any {
	m := make(map[string]any, len(r.Positionals)+len(r.Flags))
	for _, b := range r.Positionals {
		m[b.Name] = b.Value
	}
	maps.Copy(m, r.Flags)
	return m
}

// Args gives a handler typed access to its parsed arguments. Getters return
// the zero value when the argument is absent or has a different type.
type Args struct {
	result *Result
	values map[string]any
}

func NewArgs(r *Result) *Args {
	if r == nil {
		r = &Result{Flags: map[string]any{}}
	}
	return &Args{result: r, values: r.All()}
}

func (a *Args) Get(name string) any { return a.values[name] }

// Has reports whether name has a non-nil value.
func (a *Args) Has(name string) bool { return a.values[name] != nil }

func (a *Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

func (a *Args) Int(name string) int {
	n, _ := a.values[name].(int)
	return n
}

func (a *Args) Float(name string) float64 {
	f, _ := a.values[name].(float64)
	return f
}

func (a *Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

func (a *Args) Strings(name string) []string {
	s, _ := a.values[name].([]string)
	return s
}

func (a *Args) Ints(name string) []int {
	n, _ := a.values[name].([]int)
	return n
}

func (a *Args) Decimal(name string) *inf.Dec {
	d, _ := a.values[name].(*inf.Dec)
	return d
}

// Positionals returns the positional bindings in declaration order.
func (a *Args) Positionals() []Binding { return a.result.Positionals }

// Map returns a copy of all values by name.
func (a *Args) Map() map[string]any { return maps.Clone(a.values) }

// LessLogging reports the parsed command's LessLogging setting.
func (a *Args) LessLogging() bool { return a.result.LessLogging }
