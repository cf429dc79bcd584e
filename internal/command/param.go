package command

import "strings"

// Kind says how a parameter may be supplied, mirroring a function signature.
type Kind int

const (
	// PositionalOrKeyword parameters become positional arguments.
	PositionalOrKeyword Kind = iota
	// KeywordOnly parameters become flags.
	KeywordOnly
	// VarPositional and VarKeyword are rejected; they exist so that a
	// signature can be described faithfully.
	VarPositional
	VarKeyword
)

// Param declares one handler parameter. A Bool parameter is always a switch;
// other types are positionals or flags depending on Kind.
type Param struct {
	Name     string
	Kind     Kind
	Type     Type
	Optional bool
	List     bool
	// Default is the parameter's own default. Setting it makes the
	// parameter optional. It conflicts with Extra.Default.
	Default Opt
	Extra   Extra
}

// Extra is per-parameter metadata that does not fit in a type.
type Extra struct {
	Help string
	// Converter replaces the type's conversion. It runs on every string
	// value, including string defaults.
	Converter Converter
	// Default is for defaults that are not of the parameter's type, e.g. a
	// duration given as "5s" and parsed by Converter.
	Default Opt
	// Name overrides the flag name derived from Param.Name.
	Name string
	// Passthrough marks a []string positional that consumes the rest of the
	// command line verbatim. It must be the command's only parameter.
	Passthrough bool
	// Mutex makes the flag mutually exclusive with every other flag sharing
	// the same *Mutex.
	Mutex *Mutex
}

// Mutex groups flags of which at most one may be given. Unless Optional,
// exactly one is required.
type Mutex struct {
	Optional bool
}

type role int

const (
	roleArg role = iota
	roleSwitch
	roleFlag
)

// typeAnnotation is what the parser learns from a Param.
type typeAnnotation struct {
	baseType   Type
	isOptional bool
	isList     bool
	def        Opt
	extra      Extra
	role       role
}

func annotate(p Param) (typeAnnotation, error) {
	if p.Type.isZero() {
		return typeAnnotation{}, specErr("missing type annotation")
	}

	switch p.Kind {
	case VarPositional:
		return typeAnnotation{}, specErr("variadic positional parameters are not allowed; use a List parameter instead")
	case VarKeyword:
		return typeAnnotation{}, specErr("variadic keyword parameters are not supported")
	}

	ta := typeAnnotation{
		baseType:   p.Type,
		isOptional: p.Optional,
		isList:     p.List,
		extra:      p.Extra,
	}

	if ta.extra.Converter == nil && !ta.baseType.supported() {
		return ta, specErr("type `" + ta.baseType.String() + "` is not supported")
	}

	if ta.baseType.isBool {
		if ta.isList {
			return ta, specErr("a List of Bool is not allowed")
		}
		if ta.isOptional {
			return ta, specErr("use just Bool instead of an optional Bool")
		}
		ta.role = roleSwitch
	} else if p.Kind == KeywordOnly {
		ta.role = roleFlag
	} else {
		ta.role = roleArg
	}

	switch {
	case ta.extra.Default.IsSet() && p.Default.IsSet():
		return ta, specErr("duplicate defaults")
	case ta.extra.Default.IsSet():
		ta.def = ta.extra.Default
	case p.Default.IsSet():
		ta.def = p.Default
	}

	if ta.def.IsSet() {
		ta.isOptional = true
	}

	if ta.role == roleArg {
		if ta.extra.Name != "" {
			return ta, specErr("extra name is invalid for positional arguments")
		}
		if ta.def.IsSet() {
			return ta, specErr("positional arguments cannot have a default value")
		}
		if ta.extra.Passthrough && !(ta.isList && ta.baseType.name == String.name) {
			return ta, specErr("passthrough argument must have type List of String")
		}
		if ta.extra.Mutex != nil {
			return ta, specErr("mutex is invalid for positional arguments")
		}
	} else {
		if ta.extra.Passthrough {
			return ta, specErr("passthrough argument must be positional")
		}
		if ta.extra.Mutex != nil && !(ta.role == roleSwitch || ta.isOptional) {
			return ta, specErr("mutex flag must be optional")
		}
		if ta.extra.Mutex != nil && ta.def.IsSet() {
			return ta, specErr("mutex flag cannot have a default")
		}
	}

	return ta, nil
}

func (ta typeAnnotation) count() ArgCount {
	if ta.isList {
		return Many
	}
	return One
}

// flagName derives "-some-name" from "some_name".
func flagName(param string) string {
	return "-" + strings.ReplaceAll(param, "_", "-")
}
