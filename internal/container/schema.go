// Package container implements the content container type system: the
// fixed set of container types, the normalizer that repairs arbitrary
// content JSON into each type's canonical shape, the display-tree
// renderer, and the draft editor operations.
package container

// Type identifies which canonical content shape and rendering rules
// apply to a piece of content
type Type string

// The fixed set of recognized container types
const (
	TypeText      Type = "text"
	TypeList      Type = "list"
	TypeProcedure Type = "procedure"
	TypeWarning   Type = "warning"
	TypeSuccess   Type = "success"
	TypeDanger    Type = "danger"
	TypeQuiz      Type = "quiz"
	TypeGrid      Type = "grid"
	TypeTabs      Type = "tabs"
)

// Types lists every recognized container type in display order
var Types = []Type{
	TypeText,
	TypeList,
	TypeProcedure,
	TypeWarning,
	TypeSuccess,
	TypeDanger,
	TypeQuiz,
	TypeGrid,
	TypeTabs,
}

var validTypes = map[Type]bool{
	TypeText:      true,
	TypeList:      true,
	TypeProcedure: true,
	TypeWarning:   true,
	TypeSuccess:   true,
	TypeDanger:    true,
	TypeQuiz:      true,
	TypeGrid:      true,
	TypeTabs:      true,
}

// ParseType validates a container type string
func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, validTypes[t]
}

// Valid reports whether t is a recognized container type
func (t Type) Valid() bool {
	return validTypes[t]
}

func (t Type) String() string {
	return string(t)
}

// Cross-cutting content keys that may appear on any container type and
// render as supplementary blocks around the main body
const (
	keyAlerts    = "alerts"
	keyNotes     = "notes"
	keyInfoBoxes = "infoBoxes"
	keyTips      = "tips"
)

var extraKeys = []string{keyAlerts, keyNotes, keyInfoBoxes, keyTips}

// EmptyContent returns the empty canonical content shape for a type.
// Switching a container to a new type resets its content to this shape.
func EmptyContent(t Type) map[string]any {
	switch t {
	case TypeList:
		return map[string]any{"items": []any{}}
	case TypeProcedure:
		return map[string]any{"steps": []any{}}
	case TypeGrid:
		return map[string]any{"headers": []any{}, "rows": []any{}}
	case TypeTabs:
		return map[string]any{"tabs": []any{}}
	case TypeWarning, TypeSuccess, TypeDanger:
		return map[string]any{"title": "", "message": ""}
	case TypeQuiz:
		return map[string]any{"title": "", "questions": []any{}}
	default:
		return map[string]any{"text": ""}
	}
}
