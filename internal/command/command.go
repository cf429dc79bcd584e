// Package command derives a command-line interface from a declared handler
// signature and parses argv against it.
//
// A Command is built from a Handler and the list of its parameters:
//
//	cmd, err := command.FromFunc(echo, []command.Param{
//		{Name: "words", Type: command.String, List: true},
//		{Name: "n", Type: command.Bool},
//		{Name: "file", Type: command.String, Kind: command.KeywordOnly, Optional: true},
//	})
//
// which accepts `echo [-n] [-file ARG] words...`. Commands are combined into
// multi-level CLIs with Group, and run with Dispatch.
package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Handler runs a parsed command.
type Handler func(ctx context.Context, args *Args) error

// ArgSpec is one positional argument, flag or switch.
type ArgSpec struct {
	Name      string
	N         ArgCount
	Required  bool
	Default   Opt
	Help      string
	Converter Converter
	Dest      string

	choices []string
	collect func([]any) any
}

// Node is a *Command or a *Group.
type Node interface {
	nodeHelp() string
	nodeProgram() string
}

type mutexGroup struct {
	mutex *Mutex
	flags []string
}

type Command struct {
	Help        string
	Description string
	Program     string
	// LessLogging lowers the default log level to warn and turns *kgerr.Error
	// failures into a readable report instead of a returned error.
	LessLogging bool

	handler     Handler
	namesTaken  map[string]bool
	flags       map[string]*ArgSpec
	flagOrder   []string
	positionals []*ArgSpec
	passthrough string
	hasPass     bool
	mutexes     []*mutexGroup
}

func (c *Command) nodeHelp() string    { return c.Help }
func (c *Command) nodeProgram() string { return c.Program }

type Group struct {
	Help        string
	Description string
	Program     string

	subcmds map[string]Node
	order   []string
}

func (g *Group) nodeHelp() string    { return g.Help }
func (g *Group) nodeProgram() string { return g.Program }

type options struct {
	help        string
	description string
	program     string
	lessLogging bool
}

// Option configures a Command or Group.
type Option func(*options)

func WithHelp(help string) Option { return func(o *options) { o.help = help } }

func WithDescription(d string) Option { return func(o *options) { o.description = d } }

// WithProgram fixes the program name shown in usage lines.
func WithProgram(p string) Option { return func(o *options) { o.program = p } }

// WithLessLogging defaults to true.
func WithLessLogging(b bool) Option { return func(o *options) { o.lessLogging = b } }

func buildOptions(opts []Option) options {
	o := options{lessLogging: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newCommand(handler Handler, o options) *Command {
	return &Command{
		Help:        o.help,
		Description: o.description,
		Program:     o.program,
		LessLogging: o.lessLogging,
		handler:     handler,
		namesTaken:  map[string]bool{},
		flags:       map[string]*ArgSpec{},
	}
}

// FromFunc builds a Command that calls handler with the arguments described
// by params. Errors are *SpecError values naming the handler and parameter,
// or a combination of them when several mutex groups are invalid.
func FromFunc(handler Handler, params []Param, opts ...Option) (*Command, error) {
	cmd := newCommand(handler, buildOptions(opts))
	fn := funcName(handler)
	for _, p := range params {
		if err := cmd.addParam(p); err != nil {
			var se *SpecError
			if errors.As(err, &se) {
				se.Func, se.Param = fn, p.Name
			}
			return nil, err
		}
	}
	if err := cmd.checkAll(); err != nil {
		errs := []error{err}
		if merr, ok := err.(*multierror.Error); ok {
			errs = merr.Errors
		}
		for _, e := range errs {
			if se, ok := e.(*SpecError); ok {
				se.Func = fn
			}
		}
		return nil, err
	}
	return cmd, nil
}

// MustFromFunc is like FromFunc but panics on error. It is meant for
// package-level command definitions.
func MustFromFunc(handler Handler, params []Param, opts ...Option) *Command {
	cmd, err := FromFunc(handler, params, opts...)
	if err != nil {
		panic(err)
	}
	return cmd
}

func funcName(f any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return "?"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (c *Command) addParam(p Param) error {
	ta, err := annotate(p)
	if err != nil {
		return err
	}

	conv := ta.extra.Converter
	collect := collectAny
	if conv == nil {
		conv = ta.baseType.convert
		if ta.baseType.collect != nil {
			collect = ta.baseType.collect
		}
	}

	name := ta.extra.Name
	if name == "" {
		name = flagName(p.Name)
	}

	switch ta.role {
	case roleSwitch:
		if err := c.addSwitch(name, ta.extra.Help, p.Name); err != nil {
			return err
		}
	case roleFlag:
		spec := &ArgSpec{
			Name:      name,
			N:         ta.count(),
			Required:  !ta.isOptional,
			Default:   ta.def,
			Help:      ta.extra.Help,
			Converter: conv,
			Dest:      p.Name,
			choices:   ta.baseType.choices,
			collect:   collect,
		}
		if err := c.addFlag(spec, ta.baseType); err != nil {
			return err
		}
	case roleArg:
		if ta.extra.Passthrough {
			return c.addPassthrough(p.Name)
		}
		spec := &ArgSpec{
			Name:      p.Name,
			N:         ta.count(),
			Required:  !ta.isOptional,
			Help:      ta.extra.Help,
			Converter: conv,
			Dest:      p.Name,
			choices:   ta.baseType.choices,
			collect:   collect,
		}
		if err := c.addArg(spec); err != nil {
			return err
		}
	}

	if m := ta.extra.Mutex; m != nil {
		i := slices.IndexFunc(c.mutexes, func(g *mutexGroup) bool { return g.mutex == m })
		if i >= 0 {
			c.mutexes[i].flags = append(c.mutexes[i].flags, name)
		} else {
			c.mutexes = append(c.mutexes, &mutexGroup{mutex: m, flags: []string{name}})
		}
	}
	return nil
}

func (c *Command) addSwitch(name, help, dest string) error {
	if err := c.check(name, true, false); err != nil {
		return err
	}
	if dest == "" {
		dest = name
	}
	c.putFlag(&ArgSpec{
		Name:    name,
		N:       Zero,
		Default: Some(false),
		Help:    help,
		Dest:    dest,
	})
	return nil
}

func (c *Command) addArg(spec *ArgSpec) error {
	if err := c.check(spec.Name, false, spec.Required); err != nil {
		return err
	}
	if spec.N == Many {
		spec.Default = Some([]string{})
	}
	c.positionals = append(c.positionals, spec)
	return nil
}

func (c *Command) addFlag(spec *ArgSpec, typ Type) error {
	if err := c.check(spec.Name, true, spec.Required); err != nil {
		return err
	}

	if v, ok := spec.Default.Get(); ok {
		note := "(default: " + formatDefault(v, typ) + ")"
		if spec.Help != "" {
			spec.Help += " " + note
		} else {
			spec.Help = note
		}
	} else if !spec.Required {
		if spec.N == Many {
			spec.Default = Some([]string{})
		} else {
			spec.Default = Some(nil)
		}
	}

	if spec.Dest == "" {
		spec.Dest = spec.Name
	}
	c.putFlag(spec)
	return nil
}

func (c *Command) putFlag(spec *ArgSpec) {
	c.flags[spec.Name] = spec
	c.flagOrder = append(c.flagOrder, spec.Name)
}

func (c *Command) addPassthrough(name string) error {
	if len(c.flags) > 0 || len(c.positionals) > 0 {
		return specErr("command with flags or positionals cannot be marked as passthrough")
	}
	c.passthrough = name
	c.hasPass = true
	return nil
}

func (c *Command) check(name string, isFlag, required bool) error {
	if c.hasPass {
		return specErr("command was already specified as passthrough")
	}
	if c.namesTaken[name] {
		return specErrName("duplicate argument name", name)
	}
	if isHelpFlag(name) || isVersionFlag(name) {
		return specErrName("flag name is reserved", name)
	}
	if isFlag && !looksLikeFlag(name) {
		return specErrName("flag name is not valid (does it start with a hyphen?)", name)
	}
	if !isFlag && strings.HasPrefix(name, "-") {
		return specErrName("positional name must not start with hyphen", name)
	}
	if !isFlag && required && slices.ContainsFunc(c.positionals, func(s *ArgSpec) bool { return !s.Required }) {
		return specErrName("required positional argument cannot follow optional", name)
	}
	if !isFlag && slices.ContainsFunc(c.positionals, func(s *ArgSpec) bool { return s.N == Many }) {
		return specErr("list positional argument must be last")
	}
	c.namesTaken[name] = true
	return nil
}

func (c *Command) checkAll() error {
	var result *multierror.Error
	for _, g := range c.mutexes {
		if len(g.flags) < 2 {
			result = multierror.Append(result, specErr(fmt.Sprintf("mutex must appear on at least two flags: [%s]", strings.Join(g.flags, ", "))))
		}
	}
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	result.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return result
}

// Positionals returns the command's positional argument specs in order.
func (c *Command) Positionals() []ArgSpec {
	out := make([]ArgSpec, len(c.positionals))
	for i, s := range c.positionals {
		out[i] = *s
	}
	return out
}

// Flags returns the command's flag and switch specs in declaration order.
func (c *Command) Flags() []ArgSpec {
	out := make([]ArgSpec, len(c.flagOrder))
	for i, name := range c.flagOrder {
		out[i] = *c.flags[name]
	}
	return out
}

// Passthrough returns the name of the passthrough argument, if any.
func (c *Command) Passthrough() (string, bool) {
	return c.passthrough, c.hasPass
}

func NewGroup(opts ...Option) *Group {
	o := buildOptions(opts)
	return &Group{
		Help:        o.help,
		Description: o.description,
		Program:     o.program,
		subcmds:     map[string]Node{},
	}
}

// Add registers a subcommand or nested group under name.
func (g *Group) Add(name string, node Node) error {
	if _, ok := g.subcmds[name]; ok {
		return specErrName("duplicate subcommand", name)
	}
	g.subcmds[name] = node
	g.order = append(g.order, name)
	return nil
}

// AddFunc is Add(name, FromFunc(handler, params, opts...)).
func (g *Group) AddFunc(name string, handler Handler, params []Param, opts ...Option) error {
	cmd, err := FromFunc(handler, params, opts...)
	if err != nil {
		return err
	}
	return g.Add(name, cmd)
}

// Names returns the subcommand names in the order they were added.
func (g *Group) Names() []string {
	return append([]string(nil), g.order...)
}

// Lookup returns the subcommand registered under name.
func (g *Group) Lookup(name string) (Node, bool) {
	n, ok := g.subcmds[name]
	return n, ok
}
