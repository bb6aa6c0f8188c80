package templating

import (
	"fmt"

	"github.com/viant/velty"
)

// Template is a velty template compiled once for a fixed set of variables
// and executed with a fresh state per call.
type Template struct {
	names  []string
	render func(vars map[string]interface{}) (string, error)
}

// Compile defines every key of vars as a template variable, using its value
// to infer the type, and compiles tmpl.
func Compile(tmpl string, vars map[string]interface{}) (*Template, error) {
	planner := velty.New()
	ret := &Template{}
	for k, v := range vars {
		if err := planner.DefineVariable(k, v); err != nil {
			return nil, fmt.Errorf("failed to define %v: %w", k, err)
		}
		ret.names = append(ret.names, k)
	}
	exec, newState, err := planner.Compile([]byte(tmpl))
	if err != nil {
		return nil, fmt.Errorf("failed to compile template: %w", err)
	}
	ret.render = func(vars map[string]interface{}) (string, error) {
		state := newState()
		for _, k := range ret.names {
			if err := state.SetValue(k, vars[k]); err != nil {
				return "", err
			}
		}
		if err := exec.Exec(state); err != nil {
			return "", err
		}
		return string(state.Buffer.Bytes()), nil
	}
	return ret, nil
}

// Expand renders the template; vars must carry the compile-time keys.
func (t *Template) Expand(vars map[string]interface{}) (string, error) {
	for _, k := range t.names {
		if _, ok := vars[k]; !ok {
			return "", fmt.Errorf("missing template variable: %v", k)
		}
	}
	return t.render(vars)
}

// Expand compiles and renders tmpl in one step.
func Expand(tmpl string, vars map[string]interface{}) (string, error) {
	compiled, err := Compile(tmpl, vars)
	if err != nil {
		return "", err
	}
	return compiled.Expand(vars)
}
