package command

import (
	"slices"
	"sort"
	"strings"
)

// Parse matches argv against node. argv[0] is the program name and is
// skipped. Besides *ParseError, Parse returns *HelpRequest when help was
// asked for (or a group was misused) and ErrVersion for the version flags.
func Parse(node Node, argv []string) (Handler, *Result, error) {
	return parseNode(node, argv, 1)
}

func parseNode(node Node, argv []string, index int) (Handler, *Result, error) {
	switch n := node.(type) {
	case *Command:
		return parseCommand(n, argv, index)
	case *Group:
		return parseGroup(n, argv, index)
	default:
		panic("command: unknown node type")
	}
}

func parseGroup(g *Group, argv []string, index int) (Handler, *Result, error) {
	if len(g.subcmds) == 0 {
		return nil, nil, parseErr("group is empty")
	}
	if index >= len(argv) {
		return nil, nil, &HelpRequest{Node: g, Index: index, Message: "too few arguments"}
	}

	arg := argv[index]
	switch {
	case isHelpFlag(arg):
		return nil, nil, &HelpRequest{Node: g, Index: index}
	case isVersionFlag(arg):
		return nil, nil, ErrVersion
	case looksLikeFlag(arg):
		return nil, nil, &HelpRequest{Node: g, Index: index, Message: "expected subcommand, got " + arg}
	}

	sub, ok := g.subcmds[arg]
	if !ok {
		return nil, nil, &HelpRequest{Node: g, Index: index, Message: "unknown subcommand: " + arg}
	}
	return parseNode(sub, argv, index+1)
}

// slot is an argument spec together with the value parsed for it so far.
type slot struct {
	spec  *ArgSpec
	value Opt
	isSet bool
}

type mutexState struct {
	satisfied string
	optional  bool
	eligible  []string
}

type commandParser struct {
	cmd   *Command
	argv  []string
	index int
}

func (p *commandParser) consumeOne(name string) (string, error) {
	if p.index >= len(p.argv) {
		return "", parseErr("expected another argument")
	}
	arg := p.argv[p.index]
	if looksLikeFlag(arg) {
		return "", parseErr("expected argument after %s, not another flag", name)
	}
	p.index++
	return arg, nil
}

func (p *commandParser) consumeMany(name string, doneWithFlags bool) ([]string, error) {
	if p.index >= len(p.argv) {
		return nil, parseErr("expected another argument")
	}
	var r []string
	for p.index < len(p.argv) && (doneWithFlags || !looksLikeFlag(p.argv[p.index])) {
		r = append(r, p.argv[p.index])
		p.index++
	}
	if len(r) == 0 {
		return nil, parseErr("expected argument after %s", name)
	}
	return r, nil
}

func parseCommand(cmd *Command, argv []string, index int) (Handler, *Result, error) {
	if cmd.hasPass {
		rest := append([]string{}, argv[min(index, len(argv)):]...)
		return cmd.handler, &Result{
			Positionals: []Binding{{Name: cmd.passthrough, Value: rest}},
			Flags:       map[string]any{},
			LessLogging: cmd.LessLogging,
		}, nil
	}

	p := &commandParser{cmd: cmd, argv: argv, index: index}

	flags := make(map[string]*slot, len(cmd.flags))
	for _, spec := range cmd.flags {
		flags[spec.Name] = &slot{spec: spec, value: spec.Default}
	}
	positionals := make([]*slot, len(cmd.positionals))
	for i, spec := range cmd.positionals {
		positionals[i] = &slot{spec: spec, value: spec.Default}
	}
	mutexes := make([]*mutexState, len(cmd.mutexes))
	flagToMutex := map[string]*mutexState{}
	for i, g := range cmd.mutexes {
		mutexes[i] = &mutexState{optional: g.mutex.Optional, eligible: g.flags}
		for _, name := range g.flags {
			flagToMutex[name] = mutexes[i]
		}
	}

	posIndex := 0
	doneWithFlags := false
	for p.index < len(argv) {
		arg := argv[p.index]
		switch {
		case arg == "--":
			doneWithFlags = true
			p.index++
		case !doneWithFlags && isHelpFlag(arg):
			return nil, nil, &HelpRequest{Node: cmd, Index: p.index}
		case !doneWithFlags && isVersionFlag(arg):
			return nil, nil, ErrVersion
		case !doneWithFlags && looksLikeFlag(arg):
			name, value, hasValue := strings.Cut(arg, "=")
			s, ok := flags[name]
			if !ok {
				return nil, nil, parseErr("unknown flag: %s", name)
			}
			if s.isSet {
				return nil, nil, parseErr("flag was repeated: %s", name)
			}
			if m, ok := flagToMutex[name]; ok {
				if m.satisfied != "" {
					return nil, nil, parseErr("%s and %s are mutually exclusive", m.satisfied, name)
				}
				m.satisfied = name
			}

			s.isSet = true
			p.index++
			switch s.spec.N {
			case Zero:
				switch {
				case !hasValue:
					s.value = Some(true)
				case value == "true":
					s.value = Some(true)
				case value == "false":
					s.value = Some(false)
				default:
					return nil, nil, parseErr("flag argument must be 'true' or 'false': %s", name)
				}
			case One:
				if hasValue {
					s.value = Some(value)
				} else {
					v, err := p.consumeOne(s.spec.Name)
					if err != nil {
						return nil, nil, err
					}
					s.value = Some(v)
				}
			case Many:
				if hasValue {
					s.value = Some(strings.Split(value, ","))
				} else {
					vs, err := p.consumeMany(s.spec.Name, false)
					if err != nil {
						return nil, nil, err
					}
					s.value = Some(vs)
				}
			}
		default:
			if posIndex >= len(positionals) {
				return nil, nil, parseErr("extra argument: %s", arg)
			}
			s := positionals[posIndex]
			switch s.spec.N {
			case One:
				p.index++
				s.value = Some(arg)
			case Many:
				vs, err := p.consumeMany(s.spec.Name, doneWithFlags)
				if err != nil {
					return nil, nil, err
				}
				s.value = Some(vs)
			}
			s.isSet = true
			posIndex++
		}
	}

	if posIndex < len(positionals) {
		var missing []string
		for _, s := range positionals[posIndex:] {
			if s.spec.Required {
				missing = append(missing, s.spec.Name)
			}
		}
		if len(missing) > 0 {
			plural := "s"
			if len(positionals)-posIndex == 1 {
				plural = ""
			}
			return nil, nil, parseErr("missing argument%s: %s", plural, strings.Join(missing, ", "))
		}
	}

	// A flag with a default is never missing, even if it was not given.
	var missingFlags []string
	for _, s := range flags {
		if s.spec.Required && !s.value.IsSet() {
			missingFlags = append(missingFlags, s.spec.Name)
		}
	}
	if len(missingFlags) > 0 {
		sort.Strings(missingFlags)
		plural := "s"
		if len(missingFlags) == 1 {
			plural = ""
		}
		return nil, nil, parseErr("missing mandatory flag%s: %s", plural, strings.Join(missingFlags, ", "))
	}

	for _, m := range mutexes {
		if m.satisfied == "" && !m.optional {
			return nil, nil, parseErr("exactly one of the following is required: %s", strings.Join(m.eligible, ", "))
		}
	}

	result := &Result{
		Positionals: make([]Binding, 0, len(positionals)),
		Flags:       make(map[string]any, len(flags)),
		LessLogging: cmd.LessLogging,
	}
	for _, s := range positionals {
		v, ok := s.value.Get()
		if !ok {
			result.Positionals = append(result.Positionals, Binding{Name: s.spec.Dest, Value: nil})
			continue
		}
		cv, err := convert(s.spec, v)
		if err != nil {
			return nil, nil, err
		}
		result.Positionals = append(result.Positionals, Binding{Name: s.spec.Dest, Value: cv})
	}
	for _, name := range cmd.flagOrder {
		s := flags[name]
		v, _ := s.value.Get()
		if v == nil {
			result.Flags[s.spec.Dest] = nil
			continue
		}
		cv, err := convert(s.spec, v)
		if err != nil {
			return nil, nil, err
		}
		result.Flags[s.spec.Dest] = cv
	}
	return cmd.handler, result, nil
}

// convert applies spec's converter to raw. Strings are converted, string
// lists are converted element-wise, and anything else is already typed.
func convert(spec *ArgSpec, raw any) (any, error) {
	if spec.Converter == nil {
		return raw, nil
	}
	switch v := raw.(type) {
	case string:
		out, err := spec.Converter(v)
		if err != nil {
			return nil, &ParseError{Msg: "invalid value for " + spec.Name, Err: err}
		}
		return out, nil
	case []string:
		vals := make([]any, len(v))
		for i, item := range v {
			out, err := spec.Converter(item)
			if err != nil {
				return nil, &ParseError{Msg: "invalid value for " + spec.Name, Err: err}
			}
			vals[i] = out
		}
		if spec.collect == nil {
			return vals, nil
		}
		return spec.collect(vals), nil
	default:
		return raw, nil
	}
}

// looksLikeFlag reports whether s is a flag token. A lone "-" and negative
// numbers such as -1 or -1.5 are not flags.
func looksLikeFlag(s string) bool {
	return strings.HasPrefix(s, "-") && len(s) >= 2 && !isDecimalNumber(s[1:])
}

var (
	helpFlags    = []string{"-h", "-help", "--help", "-?"}
	versionFlags = []string{"-version", "--version"}
)

func isHelpFlag(s string) bool { return slices.Contains(helpFlags, s) }

func isVersionFlag(s string) bool { return slices.Contains(versionFlags, s) }
