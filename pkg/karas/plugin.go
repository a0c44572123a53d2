package karas

import (
	"fmt"
	"strings"

	"github.com/open-cli-collective/karas-cli/pkg/plugin"
)

// pluginFailureFormat is substituted when a plugin cannot be resolved or fails.
const pluginFailureFormat = ` Plugin "%s" could not be run. `

// convertPlugin invokes every balanced "[[...]]" region, innermost first.
func (c *converter) convertPlugin(buf []rune) []rune {
	var stack []*pluginMatch
	next := 0

	for {
		m, ok := find(rePlugin, buf, next)
		if !ok {
			return buf
		}

		if m.escaped(1) {
			next = m.index(2) + 1
			continue
		}

		if m.length(3) != 0 {
			stack = append(stack, &pluginMatch{index: m.index(2), marks: m.runes(2)})
			next = m.end(0)
			continue
		}

		if len(stack) == 0 {
			next = m.end(0)
			continue
		}

		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		body := string(buf[open.index+len(open.marks) : m.index(2)])
		openLen := len(removeWhiteSpace(open.marks))
		closeLen := len(removeWhiteSpace(m.runes(2)))

		newText := c.invokePlugin(string(buf), body, openLen, closeLen)

		leftOpen, leftClose := markDiff(openLen, closeLen)
		if leftOpen > 1 {
			open.marks = []rune(repeatMark('[', leftOpen))
			stack = append(stack, open)
		}
		newText = repeatMark('[', leftOpen) + newText + repeatMark(']', leftClose)

		end := m.index(2) + trimmedLen(m.runes(2))
		buf = splice(buf, open.index, end-open.index, newText)
		next = open.index + runeLen(newText) - leftClose
	}
}

// invokePlugin splits "name::opt::opt:::body" and calls the plugin.
// Both sides with three or more marks select the action form.
func (c *converter) invokePlugin(text, body string, openMarks, closeMarks int) string {
	options, hasSpecial := SplitOptions(body)
	name := options[0]
	options = options[1:]
	if hasSpecial {
		body = options[len(options)-1]
		options = options[:len(options)-1]
	}

	if openMarks > 2 && closeMarks > 2 {
		return c.callPlugin(name, func(p plugin.Plugin) (string, error) {
			a, ok := p.(plugin.Actor)
			if !ok {
				return "", plugin.ErrUnsupported
			}
			return a.Action(options, body, text)
		})
	}
	return c.callPlugin(name, func(p plugin.Plugin) (string, error) {
		cv, ok := p.(plugin.Converter)
		if !ok {
			return "", plugin.ErrUnsupported
		}
		return cv.Convert(options, body)
	})
}

// callPlugin resolves name and runs call, substituting the failure text
// when the plugin is missing, returns an error or panics.
func (c *converter) callPlugin(name string, call func(plugin.Plugin) (string, error)) (result string) {
	failure := fmt.Sprintf(pluginFailureFormat, name)

	if c.registry == nil {
		c.logger.Warn("no plugin registry", "plugin", name)
		return failure
	}
	p, ok := c.registry.Resolve(strings.TrimSpace(name))
	if !ok || p == nil {
		c.logger.Warn("plugin not found", "plugin", name)
		return failure
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("plugin panicked", "plugin", name, "panic", r)
			result = failure
		}
	}()

	out, err := call(p)
	if err != nil {
		c.logger.Warn("plugin failed", "plugin", name, "err", err)
		return failure
	}
	return out
}
