package karas

import "strings"

// resolveLinkOrGroup handles "((" "))" and "<<" ">>" runs. Opens are pushed;
// a close with no open of its family is left as text.
func resolveLinkOrGroup(buf []rune, stack inlineStack, cur *inlineMatch) (inlineStack, inlineReplacement, bool) {
	if cur.kind == InlineLinkOpen || cur.kind == InlineGroupOpen {
		return append(stack, cur), inlineReplacement{}, false
	}

	// Each close type directly follows its open type.
	pos := stack.nearest(cur.kind - 1)
	if pos < 0 {
		return stack, inlineReplacement{}, false
	}

	open := stack[pos]
	body := string(buf[open.index+len(open.marks) : cur.index])
	m, n := len(removeWhiteSpace(open.marks)), len(removeWhiteSpace(cur.marks))

	var text string
	if cur.kind == InlineLinkClose {
		text = linkHTML(body, m, n)
	} else {
		text = groupHTML(body, m, n)
	}

	leftOpen, leftClose := markDiff(m, n)
	text = repeatMark(inlineMarkupSets[open.kind].mark, leftOpen) + text + repeatMark(inlineMarkupSets[cur.kind].mark, leftClose)

	stack = keepOpen(stack, pos, inlineMarkupSets[open.kind].mark, leftOpen)
	return stack, inlineReplacement{start: open.index, text: text, leftClose: leftClose}, true
}

// linkHTML renders "url::alias". Three or more marks on both sides embed the
// target as media; five or more also wrap the media in a link.
func linkHTML(body string, openMarks, closeMarks int) string {
	parts, _ := SplitOption(body)
	url := parts[0]

	switch {
	case openMarks >= 5 && closeMarks >= 5:
		return `<a href="` + url + `">` + mediaHTML(url, parts) + `</a>`
	case openMarks >= 3 && closeMarks >= 3:
		return mediaHTML(url, parts)
	}

	alias := url
	if len(parts) > 1 {
		alias = parts[1]
	}
	return `<a href="` + url + `">` + alias + `</a>`
}

// groupHTML renders "name::content" as a span, with name as its class,
// or as its id when both sides have three or more marks.
func groupHTML(body string, openMarks, closeMarks int) string {
	parts, _ := SplitOption(body)

	attr := ""
	if parts[0] != "" {
		name := "class"
		if openMarks >= 3 && closeMarks >= 3 {
			name = "id"
		}
		attr = " " + name + `="` + parts[0] + `"`
	}

	content := ""
	if len(parts) > 1 {
		content = parts[1]
	}
	return "<span" + attr + ">" + content + "</span>"
}

func mediaHTML(url string, parts []string) string {
	var option, reserved, params, embed string
	if len(parts) > 1 {
		reserved, params, embed = objectAttributes(parts[1])
		option = " " + parts[1]
	}

	object := `<object data="` + url + `"` + reserved + `>` + params +
		`<embed src="` + url + `"` + embed + `></object>`

	switch MediaTypeOf(url) {
	case MediaImage:
		return `<img src="` + url + `"` + option + `>`
	case MediaAudio:
		return `<audio src="` + url + `"` + option + `>` + object + `</audio>`
	case MediaVideo:
		return `<video src="` + url + `"` + option + `>` + object + `</video>`
	default:
		return object
	}
}

// MediaTypeOf classifies url by its file extension, case-insensitively.
func MediaTypeOf(url string) MediaType {
	m, ok := find(reFileExtension, []rune(url), 0)
	if !ok {
		return MediaUnknown
	}
	ext := strings.ToLower(m.value(1))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if t, ok := mediaExtensions[ext]; ok {
		return t
	}
	return MediaUnknown
}

type parameter struct {
	name, value string
}

// objectAttributes splits the media option into attributes for <object>,
// <param> elements for everything else, and attributes for <embed>.
func objectAttributes(option string) (reserved, params, embed string) {
	for _, p := range parameters(option) {
		attr := p.name + `="` + p.value + `" `
		if isReservedObjectAttribute(p.name) {
			reserved += attr
		} else {
			params += `<param name="` + p.name + `" value="` + p.value + `">`
		}
		embed += attr
	}

	if reserved != "" {
		reserved = " " + strings.TrimSpace(reserved)
	}
	if embed != "" {
		embed = " " + strings.TrimSpace(embed)
	}
	return reserved, params, embed
}

// parameters reads `name="value"` pairs, then bare words as name="true".
// A repeated name keeps its first position and takes the last value.
func parameters(option string) []parameter {
	var params []parameter
	set := func(name, value string) {
		for i := range params {
			if params[i].name == name {
				params[i].value = value
				return
			}
		}
		params = append(params, parameter{name: name, value: value})
	}

	buf := []rune(option)
	for {
		m, ok := find(reStringTypeAttribute, buf, 0)
		if !ok {
			break
		}
		set(m.value(1), m.value(2))
		buf = splice(buf, m.index(0), m.length(0), "")
	}

	for _, flag := range strings.Fields(string(buf)) {
		set(flag, "true")
	}
	return params
}

func isReservedObjectAttribute(name string) bool {
	for _, reserved := range reservedObjectAttributes {
		if strings.EqualFold(name, reserved) {
			return true
		}
	}
	return false
}
