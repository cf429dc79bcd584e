package command

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kgtools/foundation/internal/kgerr"
	"github.com/spf13/cobra"
)

// Shells supported by WriteCompletion.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// Complete returns the candidates for toComplete given the arguments typed
// after the program name. It offers subcommand names inside groups, unused
// flag names, and the choices of Enum arguments.
func Complete(node Node, args []string, toComplete string) []string {
	i := 0
	for {
		g, ok := node.(*Group)
		if !ok {
			break
		}
		if i >= len(args) {
			return withPrefix(slices.Sorted(slices.Values(g.order)), toComplete)
		}
		sub, ok := g.subcmds[args[i]]
		if !ok {
			return nil
		}
		node = sub
		i++
	}

	cmd := node.(*Command)
	if cmd.hasPass {
		return nil
	}
	rest := args[i:]

	if len(rest) > 0 {
		if spec, ok := cmd.flags[rest[len(rest)-1]]; ok && spec.N != Zero {
			return withPrefix(spec.choices, toComplete)
		}
	}

	if strings.HasPrefix(toComplete, "-") {
		used := map[string]bool{}
		for _, arg := range rest {
			name, _, _ := strings.Cut(arg, "=")
			used[name] = true
		}
		var names []string
		for _, name := range cmd.flagOrder {
			if !used[name] {
				names = append(names, name)
			}
		}
		return withPrefix(names, toComplete)
	}

	if len(cmd.positionals) == 0 {
		return nil
	}
	n := countPositionals(cmd, rest)
	if n >= len(cmd.positionals) {
		last := cmd.positionals[len(cmd.positionals)-1]
		if last.N != Many {
			return nil
		}
		return withPrefix(last.choices, toComplete)
	}
	return withPrefix(cmd.positionals[n].choices, toComplete)
}

// countPositionals counts the positional tokens in args, skipping flags and
// the values they consume.
func countPositionals(cmd *Command, args []string) int {
	n := 0
	doneWithFlags := false
	for j := 0; j < len(args); j++ {
		arg := args[j]
		switch {
		case arg == "--":
			doneWithFlags = true
		case !doneWithFlags && looksLikeFlag(arg):
			spec, ok := cmd.flags[arg]
			if !ok {
				continue
			}
			switch spec.N {
			case One:
				j++
			case Many:
				for j+1 < len(args) && !looksLikeFlag(args[j+1]) {
					j++
				}
			}
		default:
			n++
		}
	}
	return n
}

func withPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// mirror builds a cobra command that answers completion requests for node.
// Flag parsing is left to Complete.
func mirror(program string, node Node) *cobra.Command {
	return &cobra.Command{
		Use:                filepath.Base(program),
		Short:              firstLine(node.nodeHelp()),
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return Complete(node, args, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(*cobra.Command, []string) {},
	}
}

// WriteCompletion writes the completion script for shell to w. The script
// calls back into program with "__complete", which Dispatch answers.
func WriteCompletion(w io.Writer, program string, node Node, shell string) error {
	root := mirror(program, node)
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return kgerr.New("unsupported shell", "shell", shell, "options", Shells)
	}
}

func firstLine(s string) string {
	if s == "" {
		return ""
	}
	return splitLines(s)[0]
}
