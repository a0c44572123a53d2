// Package plugin defines the contract between the KARAS engine and the
// plugins it invokes, plus a statically linked registry.
package plugin

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnsupported is returned when a plugin lacks the requested call form.
var ErrUnsupported = errors.New("plugin does not support this call")

// Plugin is anything the engine can resolve by name.
type Plugin interface {
	Name() string
}

// Converter is called for "[[name::options...::body]]".
type Converter interface {
	Plugin
	Convert(options []string, body string) (string, error)
}

// Actor is called for "[[[name::options...]]]" and sees the whole document.
type Actor interface {
	Plugin
	Action(options []string, body, text string) (string, error)
}

// Describer is optionally implemented to document a plugin.
type Describer interface {
	Description() string
}

// Resolver looks up plugins by name, case-insensitively.
type Resolver interface {
	Resolve(name string) (Plugin, bool)
}

// Registry maps lowercase plugin names to plugins.
// Build it before conversion starts; it is not safe for concurrent Register calls.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry returns a registry holding plugins.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{plugins: make(map[string]Plugin, len(plugins))}
	for _, p := range plugins {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any plugin with the same name.
func (r *Registry) Register(p Plugin) {
	if r.plugins == nil {
		r.plugins = make(map[string]Plugin)
	}
	r.plugins[strings.ToLower(p.Name())] = p
}

// Resolve returns the plugin registered under name.
func (r *Registry) Resolve(name string) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.plugins[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Without returns a resolver that hides the named plugins.
func (r *Registry) Without(names ...string) Resolver {
	hidden := make(map[string]bool, len(names))
	for _, name := range names {
		hidden[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return filtered{base: r, hidden: hidden}
}

type filtered struct {
	base   Resolver
	hidden map[string]bool
}

func (f filtered) Resolve(name string) (Plugin, bool) {
	if f.hidden[strings.ToLower(strings.TrimSpace(name))] {
		return nil, false
	}
	return f.base.Resolve(name)
}

// Kinds reports the call forms p supports, as "convert" and "action".
func Kinds(p Plugin) []string {
	var kinds []string
	if _, ok := p.(Converter); ok {
		kinds = append(kinds, "convert")
	}
	if _, ok := p.(Actor); ok {
		kinds = append(kinds, "action")
	}
	return kinds
}

// ConvertFunc adapts a function to a Converter.
type ConvertFunc struct {
	PluginName string
	Summary    string
	Fn         func(options []string, body string) (string, error)
}

func (f ConvertFunc) Name() string { return f.PluginName }

func (f ConvertFunc) Description() string { return f.Summary }

func (f ConvertFunc) Convert(options []string, body string) (string, error) {
	if f.Fn == nil {
		return "", ErrUnsupported
	}
	return f.Fn(options, body)
}
