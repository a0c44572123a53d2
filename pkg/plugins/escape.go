package plugins

import (
	"strconv"
	"strings"

	"github.com/open-cli-collective/karas-cli/pkg/plugin"
)

// markupChars are written as numeric character references so the converted
// body cannot open markup of its own.
const markupChars = `&<>"'*/_%@?$` + "`" + `,()[]{}=-+;:|!~#\`

// Escape shows its body as text, so markup and HTML inside it are not converted.
//
//	[[escape:::**not bold** <br>]]
func Escape() plugin.ConvertFunc {
	return plugin.ConvertFunc{
		PluginName: "escape",
		Summary:    "shows the body as text with markup characters escaped",
		Fn: func(_ []string, body string) (string, error) {
			var sb strings.Builder
			for _, r := range body {
				if strings.ContainsRune(markupChars, r) {
					sb.WriteString("&#" + strconv.Itoa(int(r)) + ";")
					continue
				}
				sb.WriteRune(r)
			}
			return sb.String(), nil
		},
	}
}
