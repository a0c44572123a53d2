// patterns.go holds the compiled delimiter patterns and the read-only markup tables.
package karas

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Patterns are compiled once and shared read-only between conversions.
// Offsets reported by regexp2 are rune offsets.
var (
	// Block group
	reBlockGroup = regexp2.MustCompile(`^(?:(\{\{)(.*?)|\}\}.*?)$`, regexp2.Multiline)
	reFigcaptionSummary = regexp2.MustCompile(
		`(?:^|\n)(\=+)(.*?)(\n(?:(?:(?:\||\!)[\|\=\>\<]|\=|\-|\+|\;|\>|\<)|\n)|$)`,
		regexp2.Singleline)

	// Block markup
	reBlockquote = regexp2.MustCompile(
		`(?:^|\n)(\>+)(.*?)(?:(\n\>)|(\n(?:\n|\=|\-|\+|\;|(?:(?:\||\!)[\|\=\>\<])))|$)`,
		regexp2.Singleline)
	reTableBlock = regexp2.MustCompile(
		`(?:^|\n)((?:\||\!)(?:\||\>|\<|\=).*?)(\n(?!(?:\||\!)[\|\=\>\<])|$)`,
		regexp2.Singleline)
	reTableCell = regexp2.MustCompile(`(\\*)(\||\!)(\||\>|\<|\=)`, regexp2.Singleline)
	reList      = regexp2.MustCompile(
		`(?:^|\n)((?:\-|\+)+)(.*?)(?:(\n(?:\-|\+))|(\n(?:\n|\;|\=))|$)`,
		regexp2.Singleline)
	reDefList = regexp2.MustCompile(
		`(?:^|\n)(\;+)(.*?)(?:(\n\;)|(\n(?:\n|\=))|$)`,
		regexp2.Singleline)
	reHeading = regexp2.MustCompile(`(?:^|\n)(\=+)(.*?)(\n\=|\n{2,}|$)`, regexp2.Singleline)
	// \n{2,} must be tried first so the leading line breaks are excluded.
	reBlockLink = regexp2.MustCompile(`(?:\n{2,}|^\n*)\s*\({2,}.+?(?:\n{2,}|$)`, regexp2.Singleline)
	reParagraph = regexp2.MustCompile(`(?:\n{2,}|^\n*)(\s*(<*).+?)(?:\n{2,}|$)`, regexp2.Singleline)

	// Inline markup
	reInlineMarkup = regexp2.MustCompile(
		`(\\*)(\*{2,}|/{2,}|_{2,}|%{2,}|\@{2,}|\?{2,}|\${2,}|`+"`"+`{2,}|'{2,}|,{2,}|"{2,}`+
			`|\({2,}[\t\v\f\u0020\u00A0]*\(*|\){2,}[\t\v\f\u0020\u00A0]*\)*`+
			`|<{2,}[\u0020\u00A0]*<*|>{2,}[\u0020\u00A0]*>*)`,
		regexp2.Singleline)
	reLineBreak = regexp2.MustCompile(`(\\*)(\~(?:\n|$))`, regexp2.None)

	// Other syntax
	rePlugin      = regexp2.MustCompile(`(\\*)((\[{2,}[\u0020\u00A0]*\[*)|(\]{2,}[\u0020\u00A0]*\]*))`, regexp2.None)
	reCommentOut  = regexp2.MustCompile(`(\\*)(\#{2,})`, regexp2.Singleline)
	reSplitOption = regexp2.MustCompile(`(\\*)(:{2,3})`, regexp2.Singleline)

	// Other
	reEscape          = regexp2.MustCompile(`\\+`, regexp2.Singleline)
	reProtocol        = regexp2.MustCompile(`:{1,1}(/{2,})`, regexp2.Singleline)
	reWhiteSpaceLine  = regexp2.MustCompile(`^[\t\v\f\u0020\u00A0]+$`, regexp2.Multiline)
	reBlankLine       = regexp2.MustCompile(`^\n`, regexp2.Multiline)
	rePreElement      = regexp2.MustCompile(`(<pre\s*.*?>)|</pre>`, regexp2.Multiline|regexp2.IgnoreCase)
	reLinkElement     = regexp2.MustCompile(
		`(?:<a.*?>.*?</a>)|(?:<img.*?>)|(?:<video.*?>.*?</video>)`+
			`|(?:<audio.*?>.*?</audio>)|<object.*?>.*?</object>`,
		regexp2.IgnoreCase)
	reStringTypeAttribute = regexp2.MustCompile(`([^\s]+?)\s*=\s*"(.+?)"`, regexp2.None)
	reFileExtension       = regexp2.MustCompile(`.+\.(.+?)$`, regexp2.None)
)

// BlockGroupType indexes reservedBlockGroupTypes.
type BlockGroupType int

const (
	BlockGroupUndefined BlockGroupType = -1
	BlockGroupDiv       BlockGroupType = 0
	BlockGroupDetails   BlockGroupType = 8
	BlockGroupFigure    BlockGroupType = 9
	BlockGroupPre       BlockGroupType = 10
	BlockGroupCode      BlockGroupType = 11
	BlockGroupKbd       BlockGroupType = 12
	BlockGroupSamp      BlockGroupType = 13
)

// reservedBlockGroupTypes maps a block group type to its element name.
var reservedBlockGroupTypes = [...]string{
	"div", "header", "footer", "nav",
	"article", "section", "aside", "address",
	"details", "figure",
	"pre", "code", "kbd", "samp",
}

// isLiteral reports whether the group body is rendered verbatim.
func (t BlockGroupType) isLiteral() bool { return t >= BlockGroupPre }

// Element returns the HTML element name of the group type.
func (t BlockGroupType) Element() string {
	if t < 0 || int(t) >= len(reservedBlockGroupTypes) {
		return reservedBlockGroupTypes[BlockGroupDiv]
	}
	return reservedBlockGroupTypes[t]
}

// LookupBlockGroupType returns the type for a reserved name, case-insensitively.
func LookupBlockGroupType(name string) BlockGroupType {
	for i, reserved := range reservedBlockGroupTypes {
		if strings.EqualFold(name, reserved) {
			return BlockGroupType(i)
		}
	}
	return BlockGroupUndefined
}

// InlineMarkupType indexes inlineMarkupSets.
type InlineMarkupType int

const (
	InlineBold InlineMarkupType = iota
	InlineItalic
	InlineUnderline
	InlineStrike
	InlineCite
	InlineDefAbbr
	InlineKbdSamp
	InlineVarCode
	InlineSupRuby
	InlineSub
	InlineQuote
	InlineLinkOpen
	InlineLinkClose
	InlineGroupOpen
	InlineGroupClose
)

// inlineMarkup describes a mark and the tags it renders to.
type inlineMarkup struct {
	mark   rune
	tag    string // two marks
	strong string // three or more marks on both sides, empty if none
}

var inlineMarkupSets = [...]inlineMarkup{
	InlineBold:       {'*', "b", "strong"},
	InlineItalic:     {'/', "i", "em"},
	InlineUnderline:  {'_', "u", "ins"},
	InlineStrike:     {'%', "s", "del"},
	InlineCite:       {'@', "cite", "small"},
	InlineDefAbbr:    {'?', "dfn", "abbr"},
	InlineKbdSamp:    {'$', "kbd", "samp"},
	InlineVarCode:    {'`', "var", "code"},
	InlineSupRuby:    {'\'', "sup", "ruby"},
	InlineSub:        {',', "sub", ""},
	InlineQuote:      {'"', "q", ""},
	InlineLinkOpen:   {'(', "a", ""},
	InlineLinkClose:  {')', "a", ""},
	InlineGroupOpen:  {'<', "span", ""},
	InlineGroupClose: {'>', "span", ""},
}

// lookupInlineMarkup returns the markup type whose mark starts marks.
func lookupInlineMarkup(marks []rune) (InlineMarkupType, bool) {
	if len(marks) == 0 {
		return 0, false
	}
	for i, set := range inlineMarkupSets {
		if set.mark == marks[0] {
			return InlineMarkupType(i), true
		}
	}
	return 0, false
}

// escapesContent reports whether the span body is HTML-escaped before wrapping.
func (t InlineMarkupType) escapesContent() bool {
	return t == InlineKbdSamp || t == InlineVarCode
}

// MediaType classifies an embedded link target by file extension.
type MediaType int

const (
	MediaImage MediaType = iota
	MediaAudio
	MediaVideo
	MediaUnknown
)

var mediaExtensions = map[string]MediaType{
	"bmp": MediaImage, "bitmap": MediaImage, "gif": MediaImage,
	"jpg": MediaImage, "jpeg": MediaImage, "png": MediaImage,

	"aac": MediaAudio, "aiff": MediaAudio, "flac": MediaAudio, "mp3": MediaAudio,
	"ogg": MediaAudio, "wav": MediaAudio, "wave": MediaAudio,

	"asf": MediaVideo, "avi": MediaVideo, "flv": MediaVideo, "mov": MediaVideo,
	"movie": MediaVideo, "mpg": MediaVideo, "mpeg": MediaVideo, "mp4": MediaVideo,
	"ogv": MediaVideo, "webm": MediaVideo,
}

// reservedObjectAttributes go on <object>; every other option becomes a <param>.
var reservedObjectAttributes = [...]string{
	"width", "height", "type", "typemustmatch", "name", "usemap", "form",
}

const (
	defaultEscapeCode = "escpcode"
	maxHeadingLevel   = 6
)
