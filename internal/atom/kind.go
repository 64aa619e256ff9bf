package atom

import "fmt"

// Kind identifies the role of an [Atom] in a documentation text.
//
// Kinds ending in Left and Right come in pairs
// and bracket the atoms between them.
type Kind int

// Atom kinds.
const (
	Nop Kind = iota
	AnnotatedList
	AutoLink
	BaseName
	BR
	BriefLeft
	BriefRight
	C
	CaptionLeft
	CaptionRight
	Code
	CodeBad
	CodeNew
	CodeOld
	CodeQuoteArgument
	CodeQuoteCommand
	DivLeft
	DivRight
	EndQmlText
	FootnoteLeft
	FootnoteRight
	FormatElse
	FormatEndif
	FormatIf
	FormattingLeft
	FormattingRight
	GeneratedList
	HR
	Image
	ImageText
	ImportantLeft
	ImportantRight
	InlineImage
	JavaScript
	Keyword
	LegaleseLeft
	LegaleseRight
	LineBreak
	Link
	LinkNode
	ListLeft
	ListItemNumber
	ListTagLeft
	ListTagRight
	ListItemLeft
	ListItemRight
	ListRight
	NavAutoLink
	NavLink
	NoteLeft
	NoteRight
	ParaLeft
	ParaRight
	Qml
	QmlText
	QuotationLeft
	QuotationRight
	RawString
	SectionLeft
	SectionRight
	SectionHeadingLeft
	SectionHeadingRight
	SidebarLeft
	SidebarRight
	SinceList
	SinceTagLeft
	SinceTagRight
	SnippetCommand
	SnippetIdentifier
	SnippetLocation
	String
	TableLeft
	TableRight
	TableHeaderLeft
	TableHeaderRight
	TableRowLeft
	TableRowRight
	TableItemLeft
	TableItemRight
	TableOfContents
	Target
	UnhandledFormat
	UnknownCommand

	numKinds // must be last
)

var _kindNames = [...]string{
	Nop:                 "Nop",
	AnnotatedList:       "AnnotatedList",
	AutoLink:            "AutoLink",
	BaseName:            "BaseName",
	BR:                  "BR",
	BriefLeft:           "BriefLeft",
	BriefRight:          "BriefRight",
	C:                   "C",
	CaptionLeft:         "CaptionLeft",
	CaptionRight:        "CaptionRight",
	Code:                "Code",
	CodeBad:             "CodeBad",
	CodeNew:             "CodeNew",
	CodeOld:             "CodeOld",
	CodeQuoteArgument:   "CodeQuoteArgument",
	CodeQuoteCommand:    "CodeQuoteCommand",
	DivLeft:             "DivLeft",
	DivRight:            "DivRight",
	EndQmlText:          "EndQmlText",
	FootnoteLeft:        "FootnoteLeft",
	FootnoteRight:       "FootnoteRight",
	FormatElse:          "FormatElse",
	FormatEndif:         "FormatEndif",
	FormatIf:            "FormatIf",
	FormattingLeft:      "FormattingLeft",
	FormattingRight:     "FormattingRight",
	GeneratedList:       "GeneratedList",
	HR:                  "HR",
	Image:               "Image",
	ImageText:           "ImageText",
	ImportantLeft:       "ImportantLeft",
	ImportantRight:      "ImportantRight",
	InlineImage:         "InlineImage",
	JavaScript:          "JavaScript",
	Keyword:             "Keyword",
	LegaleseLeft:        "LegaleseLeft",
	LegaleseRight:       "LegaleseRight",
	LineBreak:           "LineBreak",
	Link:                "Link",
	LinkNode:            "LinkNode",
	ListLeft:            "ListLeft",
	ListItemNumber:      "ListItemNumber",
	ListTagLeft:         "ListTagLeft",
	ListTagRight:        "ListTagRight",
	ListItemLeft:        "ListItemLeft",
	ListItemRight:       "ListItemRight",
	ListRight:           "ListRight",
	NavAutoLink:         "NavAutoLink",
	NavLink:             "NavLink",
	NoteLeft:            "NoteLeft",
	NoteRight:           "NoteRight",
	ParaLeft:            "ParaLeft",
	ParaRight:           "ParaRight",
	Qml:                 "Qml",
	QmlText:             "QmlText",
	QuotationLeft:       "QuotationLeft",
	QuotationRight:      "QuotationRight",
	RawString:           "RawString",
	SectionLeft:         "SectionLeft",
	SectionRight:        "SectionRight",
	SectionHeadingLeft:  "SectionHeadingLeft",
	SectionHeadingRight: "SectionHeadingRight",
	SidebarLeft:         "SidebarLeft",
	SidebarRight:        "SidebarRight",
	SinceList:           "SinceList",
	SinceTagLeft:        "SinceTagLeft",
	SinceTagRight:       "SinceTagRight",
	SnippetCommand:      "SnippetCommand",
	SnippetIdentifier:   "SnippetIdentifier",
	SnippetLocation:     "SnippetLocation",
	String:              "String",
	TableLeft:           "TableLeft",
	TableRight:          "TableRight",
	TableHeaderLeft:     "TableHeaderLeft",
	TableHeaderRight:    "TableHeaderRight",
	TableRowLeft:        "TableRowLeft",
	TableRowRight:       "TableRowRight",
	TableItemLeft:       "TableItemLeft",
	TableItemRight:      "TableItemRight",
	TableOfContents:     "TableOfContents",
	Target:              "Target",
	UnhandledFormat:     "UnhandledFormat",
	UnknownCommand:      "UnknownCommand",
}

var _kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k, name := range _kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the name of the kind, e.g. "ParaLeft".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(_kindNames) {
		return _kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	k, ok := _kindsByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown atom kind %q", name)
	}
	return k, nil
}

// UnmarshalText decodes a Kind from its name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalText encodes a Kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Payloads of FormattingLeft and FormattingRight atoms.
const (
	FormattingBold        = "bold"
	FormattingIndex       = "index"
	FormattingItalic      = "italic"
	FormattingLink        = "link"
	FormattingParameter   = "parameter"
	FormattingSpan        = "span "
	FormattingSubscript   = "subscript"
	FormattingSuperscript = "superscript"
	FormattingTeletype    = "teletype"
	FormattingUIControl   = "uicontrol"
	FormattingUnderline   = "underline"
)

// Payloads of ListLeft and ListRight atoms.
const (
	ListBullet     = "bullet"
	ListTag        = "tag"
	ListValue      = "value"
	ListLowerAlpha = "loweralpha"
	ListLowerRoman = "lowerroman"
	ListNumeric    = "numeric"
	ListUpperAlpha = "upperalpha"
	ListUpperRoman = "upperroman"
)
