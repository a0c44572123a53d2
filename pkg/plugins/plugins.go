// Package plugins provides the plugins bundled with karas.
package plugins

import "github.com/open-cli-collective/karas-cli/pkg/plugin"

// Default returns a registry holding every bundled plugin.
func Default() *plugin.Registry {
	return plugin.NewRegistry(
		TOC{},
		Template{},
		NewMarkdown(),
		Escape(),
	)
}
