package container

import "strings"

// Node is one element of the rendered display tree. Kind selects the
// element, Variant refines it (alert severity, container type), and
// the remaining fields are populated per kind. The tree is plain data
// so it serializes straight to JSON for clients.
type Node struct {
	Kind     string   `json:"kind"`
	Variant  string   `json:"variant,omitempty"`
	Title    string   `json:"title,omitempty"`
	Text     string   `json:"text,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	Price    string   `json:"price,omitempty"`
	Headers  []string `json:"headers,omitempty"`
	Cells    []string `json:"cells,omitempty"`
	Striped  bool     `json:"striped,omitempty"`
	Active   int      `json:"active,omitempty"`
	Correct  int      `json:"correct,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Node kinds
const (
	KindContainer   = "container"
	KindAlert       = "alert"
	KindPlaceholder = "placeholder"
	KindText        = "text"
	KindNote        = "note"
	KindSection     = "section"
	KindList        = "list"
	KindListItem    = "list_item"
	KindSteps       = "steps"
	KindStep        = "step"
	KindTable       = "table"
	KindRow         = "row"
	KindTabs        = "tabs"
	KindTab         = "tab"
	KindQuiz        = "quiz"
	KindQuestion    = "question"
	KindOption      = "option"
	KindContact     = "contact"
	KindInfoBox     = "info_box"
	KindTip         = "tip"
)

// Render builds the display tree for a (type, content) pair. It is a
// pure function: the input map is never mutated and malformed or
// missing fields degrade to omission or a placeholder node. It never
// panics, whatever the content looks like.
func Render(t Type, content map[string]any) *Node {
	root := &Node{Kind: KindContainer, Variant: string(t)}
	if content == nil {
		content = map[string]any{}
	}

	root.Children = append(root.Children, renderAlerts(content)...)
	root.Children = append(root.Children, renderBody(t, content)...)
	root.Children = append(root.Children, renderExtras(content)...)

	if len(root.Children) == 0 {
		root.Children = append(root.Children, placeholder("No content available"))
	}
	return root
}

// IsMinimal reports whether content is empty enough that the item
// should be displayed through its ordered container instances instead
// of the single-container renderer.
func IsMinimal(content map[string]any) bool {
	if len(content) == 0 {
		return true
	}
	text, hasText := content["text"].(string)
	if hasText && text == "" {
		_, hasHeaders := content["headers"]
		_, hasItems := content["items"]
		if !hasHeaders && !hasItems {
			return true
		}
	}
	return false
}

func placeholder(text string) *Node {
	return &Node{Kind: KindPlaceholder, Text: text}
}

func renderBody(t Type, content map[string]any) []*Node {
	switch t {
	case TypeProcedure:
		return renderProcedure(content)
	case TypeList:
		return renderList(content)
	case TypeGrid:
		return renderGrid(content)
	case TypeTabs:
		return renderTabs(content)
	case TypeQuiz:
		return renderQuiz(content)
	case TypeWarning, TypeSuccess, TypeDanger:
		return renderAlertBox(t, content)
	default:
		return renderText(content)
	}
}

func renderProcedure(content map[string]any) []*Node {
	// legacy procedure content stored its steps under "items"
	steps := arrayValue(content, "steps")
	if steps == nil {
		steps = arrayValue(content, "items")
	}
	if len(steps) == 0 {
		return nil
	}
	node := &Node{Kind: KindSteps}
	for _, raw := range steps {
		step, _ := raw.(map[string]any)
		if step == nil {
			node.Children = append(node.Children, &Node{Kind: KindStep, Text: stringify(raw)})
			continue
		}
		node.Children = append(node.Children, &Node{
			Kind:  KindStep,
			Icon:  stringValue(step, "icon"),
			Title: stringValue(step, "title"),
			Text:  stringValue(step, "description"),
			Price: stringValue(step, "price"),
		})
	}
	return []*Node{node}
}

func renderList(content map[string]any) []*Node {
	items := arrayValue(content, "items")
	if len(items) == 0 {
		return nil
	}
	node := &Node{Kind: KindList}
	for _, item := range items {
		node.Children = append(node.Children, &Node{Kind: KindListItem, Text: stringify(item)})
	}
	return []*Node{node}
}

func renderGrid(content map[string]any) []*Node {
	node := &Node{Kind: KindTable}
	for _, h := range arrayValue(content, "headers") {
		node.Headers = append(node.Headers, stringify(h))
	}
	for i, row := range arrayValue(content, "rows") {
		node.Children = append(node.Children, &Node{
			Kind:    KindRow,
			Cells:   SplitCells(row),
			Striped: i%2 == 1,
		})
	}
	if node.Headers == nil && node.Children == nil {
		return []*Node{placeholder("No table data available")}
	}
	return []*Node{node}
}

func renderTabs(content map[string]any) []*Node {
	tabs := arrayValue(content, "tabs")
	if len(tabs) == 0 {
		return []*Node{placeholder("No tabs data available")}
	}
	// exactly one tab is active at a time; selection starts at 0 and
	// switching is a pure local state change on the client
	node := &Node{Kind: KindTabs, Active: 0}
	for _, raw := range tabs {
		tab, _ := raw.(map[string]any)
		title, text := "", ""
		if tab != nil {
			title = stringValue(tab, "title")
			text = FlattenText(tab["content"])
		} else {
			text = stringify(raw)
		}
		node.Children = append(node.Children, &Node{Kind: KindTab, Title: title, Text: text})
	}
	return []*Node{node}
}

func renderQuiz(content map[string]any) []*Node {
	node := &Node{Kind: KindQuiz, Title: stringValue(content, "title")}
	for _, raw := range arrayValue(content, "questions") {
		q, _ := raw.(map[string]any)
		if q == nil {
			continue
		}
		question := &Node{
			Kind:    KindQuestion,
			Text:    stringValue(q, "question"),
			Correct: int(correctIndex(q)),
		}
		for _, opt := range arrayValue(q, "options") {
			question.Children = append(question.Children, &Node{Kind: KindOption, Text: stringify(opt)})
		}
		node.Children = append(node.Children, question)
	}
	if node.Title == "" && node.Children == nil {
		return []*Node{placeholder("No quiz data available")}
	}
	return []*Node{node}
}

func renderAlertBox(t Type, content map[string]any) []*Node {
	node := &Node{
		Kind:    KindAlert,
		Variant: string(t),
		Title:   stringValue(content, "title"),
		Text:    stringValue(content, "message"),
	}
	if t == TypeDanger {
		// danger boxes additionally support a leading warning line and
		// an emergency contact list
		if warning := stringValue(content, "warning"); warning != "" {
			if node.Text == "" {
				node.Text = warning
			} else {
				node.Text = warning + "\n" + node.Text
			}
		}
		for _, raw := range arrayValue(content, "contacts") {
			contact, _ := raw.(map[string]any)
			if contact == nil {
				continue
			}
			node.Children = append(node.Children, &Node{
				Kind:  KindContact,
				Icon:  stringValue(contact, "icon"),
				Title: stringValue(contact, "title"),
			})
		}
	}
	if node.Title == "" && node.Text == "" && node.Children == nil {
		return []*Node{placeholder("No content available")}
	}
	return []*Node{node}
}

func renderText(content map[string]any) []*Node {
	var nodes []*Node
	if text := stringValue(content, "text"); text != "" {
		nodes = append(nodes, &Node{Kind: KindText, Text: text})
	} else if sections := arrayValue(content, "sections"); len(sections) > 0 {
		for _, raw := range sections {
			section, _ := raw.(map[string]any)
			if section == nil {
				continue
			}
			node := &Node{
				Kind:  KindSection,
				Title: stringValue(section, "title"),
				Text:  stringValue(section, "progression"),
			}
			if advanced := stringValue(section, "advanced"); advanced != "" {
				node.Children = append(node.Children, &Node{Kind: KindText, Variant: "advanced", Text: advanced})
			}
			if alternate := stringValue(section, "alternate"); alternate != "" {
				node.Children = append(node.Children, &Node{Kind: KindText, Variant: "alternate", Text: alternate})
			}
			nodes = append(nodes, node)
		}
	} else {
		nodes = append(nodes, placeholder("No content available"))
	}
	if note := stringValue(content, "note"); note != "" {
		nodes = append(nodes, &Node{Kind: KindNote, Text: note})
	}
	return nodes
}

// renderAlerts renders the cross-cutting alert blocks that may precede
// the main body on any container type
func renderAlerts(content map[string]any) []*Node {
	var nodes []*Node
	for _, raw := range arrayValue(content, keyAlerts) {
		alert, _ := raw.(map[string]any)
		if alert == nil {
			continue
		}
		variant := stringValue(alert, "type")
		switch Type(variant) {
		case TypeWarning, TypeSuccess, TypeDanger:
		default:
			variant = string(TypeWarning)
		}
		nodes = append(nodes, &Node{
			Kind:    KindAlert,
			Variant: variant,
			Title:   stringValue(alert, "title"),
			Text:    stringValue(alert, "message"),
		})
	}
	return nodes
}

// renderExtras renders the trailing supplementary blocks (notes, info
// boxes, tips) shared by every container type
func renderExtras(content map[string]any) []*Node {
	var nodes []*Node
	for _, raw := range arrayValue(content, keyNotes) {
		note := stringify(raw)
		if strings.TrimSpace(note) == "" {
			continue
		}
		nodes = append(nodes, &Node{Kind: KindNote, Text: note})
	}
	for _, raw := range arrayValue(content, keyInfoBoxes) {
		box, _ := raw.(map[string]any)
		if box == nil {
			continue
		}
		title, text := stringValue(box, "title"), stringValue(box, "content")
		if title == "" && text == "" {
			continue
		}
		nodes = append(nodes, &Node{Kind: KindInfoBox, Title: title, Text: text})
	}
	for _, raw := range arrayValue(content, keyTips) {
		tip, _ := raw.(map[string]any)
		if tip == nil {
			continue
		}
		title, text := stringValue(tip, "title"), stringValue(tip, "content")
		if title == "" && text == "" {
			continue
		}
		nodes = append(nodes, &Node{Kind: KindTip, Title: title, Text: text})
	}
	return nodes
}
