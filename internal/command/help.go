package command

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/kgtools/foundation/internal/tabular"
	"github.com/mitchellh/go-wordwrap"
)

const (
	helpWidth          = 70
	helpIndent         = "  "
	recursiveSeparator = "\n\n------------\n\n"
)

// HelpText renders the usage message of node. program is what the user
// typed to reach node, e.g. "kg table".
func HelpText(node Node, program string) string {
	var lines []string
	switch n := node.(type) {
	case *Command:
		lines = append(lines, "Usage: "+program+" ...", "")
		lines = append(lines, helpParagraphs(n.Help)...)
		if rows := argumentLines(n); len(rows) > 0 {
			lines = append(lines, "Arguments:", "")
			lines = append(lines, rows...)
			lines = append(lines, "")
		}
	case *Group:
		lines = append(lines, "Usage: "+program+" SUBCMD", "")
		lines = append(lines, helpParagraphs(n.Help)...)
		lines = append(lines, "Subcommands:", "")
		lines = append(lines, subcommandLines(n)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// HelpTextRecursive renders node's help followed by the help of every
// subcommand beneath it, in the order they were added.
func HelpTextRecursive(node Node, program string) string {
	text := HelpText(node, program)
	g, ok := node.(*Group)
	if !ok || len(g.order) == 0 {
		return text
	}
	sections := make([]string, 0, len(g.order))
	for _, name := range g.order {
		sections = append(sections, HelpTextRecursive(g.subcmds[name], program+" "+name))
	}
	return text + recursiveSeparator + strings.Join(sections, recursiveSeparator)
}

// helpParagraphs wraps every line of help separately, followed by a blank
// line. Empty help renders nothing.
func helpParagraphs(help string) []string {
	if help == "" {
		return nil
	}
	var out []string
	for _, line := range splitLines(help) {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		wrapped := wordwrap.WrapString(strings.Join(words, " "), helpWidth-uint(len(helpIndent)))
		for _, w := range strings.Split(wrapped, "\n") {
			out = append(out, helpIndent+w)
		}
	}
	return append(out, "")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func argumentHelp(spec *ArgSpec) string {
	if spec.Help == "" {
		return ""
	}
	return ". " + spec.Help
}

func argumentLines(c *Command) []string {
	const (
		before       = "  "
		beforeMinus1 = " "
		after        = "    "
	)

	t := tabular.New()
	for _, spec := range c.positionals {
		t.Row(before, spec.Name, after, argumentHelp(spec))
	}

	flags := make([]*ArgSpec, 0, len(c.flags))
	for _, name := range c.flagOrder {
		flags = append(flags, c.flags[name])
	}
	slices.SortStableFunc(flags, func(a, b *ArgSpec) int {
		if a.Required != b.Required {
			if a.Required {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	for _, spec := range flags {
		var modifier string
		switch spec.N {
		case One:
			modifier = "ARG"
		case Many:
			modifier = "ARGS.."
		}

		switch {
		case spec.Required:
			t.Row(before, spec.Name+" "+modifier, after, argumentHelp(spec))
		case modifier != "":
			t.Row(beforeMinus1, "["+spec.Name+" "+modifier+"]", after, argumentHelp(spec))
		default:
			t.Row(beforeMinus1, "["+spec.Name+"]", after, argumentHelp(spec))
		}
	}
	return t.Lines(0)
}

func subcommandLines(g *Group) []string {
	names := slices.Sorted(slices.Values(g.order))
	t := tabular.New()
	for _, name := range names {
		var help string
		if h := g.subcmds[name].nodeHelp(); h != "" {
			help = ". " + splitLines(h)[0]
		}
		t.Row("  "+name, "    ", help)
	}
	return t.Lines(0)
}

// formatDefault renders a flag default for help text: strings are quoted,
// string lists look like ["a", "b"], and Path defaults under the home
// directory are shown relative to "~". A nil default is "none".
func formatDefault(v any, typ Type) string {
	switch d := v.(type) {
	case nil:
		return "none"
	case string:
		if typ.name == Path.name {
			return homeRelative(d)
		}
		return strconv.Quote(d)
	case []string:
		quoted := make([]string, len(d))
		for i, s := range d {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(d)
	}
}

func homeRelative(p string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(home, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(p)
	}
	return "~/" + filepath.ToSlash(rel)
}
