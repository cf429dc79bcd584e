//go:build property
// +build property

package command

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func mustParse(node Node, argv ...string) (map[string]any, error) {
	_, result, err := Parse(node, argv)
	if err != nil {
		return nil, err
	}
	return result.All(), nil
}

// word generates tokens that never look like flags.
func word() gopter.Gen {
	return gen.RegexMatch(`^[a-z][a-z0-9_.]{0,8}$`)
}

func TestParserProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("required positionals bind in declaration order", prop.ForAll(
		func(values []string) bool {
			params := make([]Param, len(values))
			for i := range values {
				params[i] = Param{Name: fmt.Sprintf("p%d", i), Type: String}
			}
			cmd, err := FromFunc(noop, params)
			if err != nil {
				return false
			}
			_, result, err := Parse(cmd, append([]string{"prog"}, values...))
			if err != nil {
				return false
			}
			for i, b := range result.Positionals {
				if b.Name != params[i].Name || b.Value != values[i] {
					return false
				}
			}
			return len(result.Positionals) == len(values)
		},
		gen.SliceOfN(6, word()),
	))

	properties.Property("-x=value and -x value bind the same", prop.ForAll(
		func(value string) bool {
			cmd := MustFromFunc(noop, []Param{{Name: "x", Kind: KeywordOnly, Type: String}})
			a, errA := mustParse(cmd, "prog", "-x="+value)
			b, errB := mustParse(cmd, "prog", "-x", value)
			return errA == nil && errB == nil && reflect.DeepEqual(a, b)
		},
		word(),
	))

	properties.Property("switches are false unless given", prop.ForAll(
		func(given bool) bool {
			cmd := MustFromFunc(noop, []Param{{Name: "v", Kind: KeywordOnly, Type: Bool}})
			argv := []string{"prog"}
			if given {
				argv = append(argv, "-v")
			}
			got, err := mustParse(cmd, argv...)
			return err == nil && got["v"] == given
		},
		gen.Bool(),
	))

	properties.Property("a repeated flag is an error for every arity", prop.ForAll(
		func(n int, value string) bool {
			p := Param{Name: "x", Kind: KeywordOnly, Type: String, Optional: true}
			argv := []string{"prog", "-x", value, "-x", value}
			switch ArgCount(n) {
			case Zero:
				p = Param{Name: "x", Kind: KeywordOnly, Type: Bool}
				argv = []string{"prog", "-x", "-x"}
			case Many:
				p.List = true
			}
			cmd := MustFromFunc(noop, []Param{p})
			_, err := mustParse(cmd, argv...)
			return err != nil && err.Error() == "flag was repeated: -x"
		},
		gen.IntRange(0, 2),
		word(),
	))

	properties.Property("tokens after -- are never flags", prop.ForAll(
		func(tokens []string) bool {
			cmd := MustFromFunc(noop, []Param{
				{Name: "rest", Type: String, List: true, Optional: true},
				{Name: "v", Kind: KeywordOnly, Type: Bool},
			})
			flagged := make([]string, len(tokens))
			for i, tok := range tokens {
				flagged[i] = "-" + tok
			}
			got, err := mustParse(cmd, append([]string{"prog", "--"}, flagged...)...)
			if err != nil {
				return false
			}
			if len(flagged) == 0 {
				return reflect.DeepEqual(got["rest"], []string{}) && got["v"] == false
			}
			return reflect.DeepEqual(got["rest"], flagged) && got["v"] == false
		},
		gen.SliceOf(word()),
	))

	properties.Property("negative numbers are values", prop.ForAll(
		func(n int64, frac bool) bool {
			s := fmt.Sprintf("-%d", n)
			if frac {
				s += ".5"
			}
			cmd := MustFromFunc(noop, []Param{
				{Name: "x", Kind: KeywordOnly, Type: String},
				{Name: "y", Type: String},
			})
			got, err := mustParse(cmd, "prog", "-x", s, s)
			return err == nil && got["x"] == s && got["y"] == s
		},
		gen.Int64Range(0, 1_000_000),
		gen.Bool(),
	))

	properties.Property("mutex groups allow at most one flag", prop.ForAll(
		func(optional, giveA, giveB bool) bool {
			m := &Mutex{Optional: optional}
			cmd := MustFromFunc(noop, []Param{
				{Name: "a", Kind: KeywordOnly, Type: String, Optional: true, Extra: Extra{Mutex: m}},
				{Name: "b", Kind: KeywordOnly, Type: String, Optional: true, Extra: Extra{Mutex: m}},
			})
			argv := []string{"prog"}
			if giveA {
				argv = append(argv, "-a", "1")
			}
			if giveB {
				argv = append(argv, "-b", "2")
			}
			got, err := mustParse(cmd, argv...)
			switch {
			case giveA && giveB:
				return err != nil && strings.HasSuffix(err.Error(), "are mutually exclusive")
			case !giveA && !giveB:
				if optional {
					return err == nil && got["a"] == nil && got["b"] == nil
				}
				return err != nil && strings.HasPrefix(err.Error(), "exactly one of the following is required")
			case giveA:
				return err == nil && got["a"] == "1" && got["b"] == nil
			default:
				return err == nil && got["b"] == "2" && got["a"] == nil
			}
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("no positional may follow a list positional", prop.ForAll(
		func(name string, list bool) bool {
			_, err := FromFunc(noop, []Param{
				{Name: "words", Type: String, List: true},
				{Name: "p_" + name, Type: String, List: list, Optional: true},
			})
			return err != nil && strings.Contains(err.Error(), "list positional argument must be last")
		},
		word(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
