package container

import (
	"encoding/json"
	"fmt"
)

// Draft is an in-progress content object being edited. It owns its
// content map exclusively: every mutation happens through the typed
// operations below and nothing is persisted until the caller saves
// explicitly. Index arguments are validated so a stale client can
// never corrupt the draft.
type Draft struct {
	contentType Type
	content     map[string]any
}

// NewDraft starts a draft with the empty canonical shape for a type
func NewDraft(t Type) *Draft {
	if !t.Valid() {
		t = TypeText
	}
	return &Draft{contentType: t, content: EmptyContent(t)}
}

// LoadDraft starts a draft from existing content, repairing it into
// canonical shape first
func LoadDraft(raw json.RawMessage, declared Type) *Draft {
	var decoded any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	t, content := Normalize(decoded, declared)
	return &Draft{contentType: t, content: content}
}

// Type returns the draft's current container type
func (d *Draft) Type() Type {
	return d.contentType
}

// Content returns a deep copy of the draft content so callers cannot
// mutate the draft behind its back
func (d *Draft) Content() map[string]any {
	return deepCopyMap(d.content)
}

// MarshalContent encodes the draft content for persistence
func (d *Draft) MarshalContent() json.RawMessage {
	encoded, err := json.Marshal(d.content)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return encoded
}

// SwitchType resets the draft to the empty canonical shape of a new
// type. Discarding the previous content is intentional: the caller is
// expected to confirm with the user first.
func (d *Draft) SwitchType(t Type) error {
	if !t.Valid() {
		return fmt.Errorf("unknown container type %q", t)
	}
	d.contentType = t
	d.content = EmptyContent(t)
	return nil
}

// Suggest runs auto-detection over the draft content and reports a
// better-fitting type when the shape does not match the declared one.
// It never switches the type itself.
func (d *Draft) Suggest() (Type, bool) {
	detected, ok := Detect(d.content)
	if !ok || detected == d.contentType {
		return "", false
	}
	return detected, true
}

// Text operations

// SetText replaces the text body (text containers)
func (d *Draft) SetText(text string) {
	d.content["text"] = text
}

// Alert operations (warning, success, danger containers)

// SetAlert sets the title and message of an alert container
func (d *Draft) SetAlert(title, message string) {
	d.content["title"] = title
	d.content["message"] = message
}

// List operations

// AddListItem appends an item
func (d *Draft) AddListItem(item string) {
	d.content["items"] = append(arrayValue(d.content, "items"), item)
}

// UpdateListItem replaces the item at an index
func (d *Draft) UpdateListItem(index int, item string) error {
	items := arrayValue(d.content, "items")
	if index < 0 || index >= len(items) {
		return errIndex("item", index)
	}
	items[index] = item
	d.content["items"] = items
	return nil
}

// RemoveListItem deletes the item at an index
func (d *Draft) RemoveListItem(index int) error {
	items, err := removeAt(arrayValue(d.content, "items"), index, "item")
	if err != nil {
		return err
	}
	d.content["items"] = items
	return nil
}

// Procedure operations

// AddStep appends an empty step
func (d *Draft) AddStep() {
	d.content["steps"] = append(arrayValue(d.content, "steps"), map[string]any{
		"icon":        "",
		"title":       "",
		"description": "",
	})
}

// UpdateStep replaces the icon, title and description of a step
func (d *Draft) UpdateStep(index int, icon, title, description string) error {
	steps := arrayValue(d.content, "steps")
	if index < 0 || index >= len(steps) {
		return errIndex("step", index)
	}
	steps[index] = map[string]any{"icon": icon, "title": title, "description": description}
	d.content["steps"] = steps
	return nil
}

// RemoveStep deletes the step at an index
func (d *Draft) RemoveStep(index int) error {
	steps, err := removeAt(arrayValue(d.content, "steps"), index, "step")
	if err != nil {
		return err
	}
	d.content["steps"] = steps
	return nil
}

// Tab operations

// AddTab appends an empty tab
func (d *Draft) AddTab() {
	d.content["tabs"] = append(arrayValue(d.content, "tabs"), map[string]any{
		"title":   "",
		"content": "",
	})
}

// UpdateTab replaces the title and content of a tab
func (d *Draft) UpdateTab(index int, title, content string) error {
	tabs := arrayValue(d.content, "tabs")
	if index < 0 || index >= len(tabs) {
		return errIndex("tab", index)
	}
	tabs[index] = map[string]any{"title": title, "content": content}
	d.content["tabs"] = tabs
	return nil
}

// RemoveTab deletes the tab at an index
func (d *Draft) RemoveTab(index int) error {
	tabs, err := removeAt(arrayValue(d.content, "tabs"), index, "tab")
	if err != nil {
		return err
	}
	d.content["tabs"] = tabs
	return nil
}

// Grid operations

// SetHeaders replaces the grid header row
func (d *Draft) SetHeaders(headers []string) {
	encoded := make([]any, 0, len(headers))
	for _, h := range headers {
		encoded = append(encoded, h)
	}
	d.content["headers"] = encoded
}

// AddRow appends a row of cells
func (d *Draft) AddRow(cells []string) {
	encoded := make([]any, 0, len(cells))
	for _, c := range cells {
		encoded = append(encoded, c)
	}
	d.content["rows"] = append(arrayValue(d.content, "rows"), encoded)
}

// UpdateRow replaces the row at an index. Cells may arrive as a single
// comma-joined string from a plain text input; SplitCells repairs that.
func (d *Draft) UpdateRow(index int, row any) error {
	rows := arrayValue(d.content, "rows")
	if index < 0 || index >= len(rows) {
		return errIndex("row", index)
	}
	cells := SplitCells(row)
	encoded := make([]any, 0, len(cells))
	for _, c := range cells {
		encoded = append(encoded, c)
	}
	rows[index] = encoded
	d.content["rows"] = rows
	return nil
}

// RemoveRow deletes the row at an index
func (d *Draft) RemoveRow(index int) error {
	rows, err := removeAt(arrayValue(d.content, "rows"), index, "row")
	if err != nil {
		return err
	}
	d.content["rows"] = rows
	return nil
}

// Quiz operations

// SetQuizTitle sets the quiz heading
func (d *Draft) SetQuizTitle(title string) {
	d.content["title"] = title
}

// AddQuestion appends a question with two empty options
func (d *Draft) AddQuestion() {
	d.content["questions"] = append(arrayValue(d.content, "questions"), map[string]any{
		"question": "",
		"options":  []any{"", ""},
		"correct":  float64(0),
	})
}

// RemoveQuestion deletes the question at an index
func (d *Draft) RemoveQuestion(index int) error {
	questions, err := removeAt(arrayValue(d.content, "questions"), index, "question")
	if err != nil {
		return err
	}
	d.content["questions"] = questions
	return nil
}

// UpdateQuestion replaces the prompt of a question
func (d *Draft) UpdateQuestion(index int, prompt string) error {
	q, err := d.question(index)
	if err != nil {
		return err
	}
	q["question"] = prompt
	return nil
}

// AddOption appends an empty option to a question
func (d *Draft) AddOption(questionIndex int) error {
	q, err := d.question(questionIndex)
	if err != nil {
		return err
	}
	q["options"] = append(arrayValue(q, "options"), "")
	return nil
}

// UpdateOption replaces an option of a question
func (d *Draft) UpdateOption(questionIndex, optionIndex int, option string) error {
	q, err := d.question(questionIndex)
	if err != nil {
		return err
	}
	options := arrayValue(q, "options")
	if optionIndex < 0 || optionIndex >= len(options) {
		return errIndex("option", optionIndex)
	}
	options[optionIndex] = option
	q["options"] = options
	return nil
}

// RemoveOption deletes an option; the correct index is clamped so it
// keeps pointing at a real option
func (d *Draft) RemoveOption(questionIndex, optionIndex int) error {
	q, err := d.question(questionIndex)
	if err != nil {
		return err
	}
	options, err := removeAt(arrayValue(q, "options"), optionIndex, "option")
	if err != nil {
		return err
	}
	q["options"] = options
	if int(correctIndex(q)) >= len(options) && len(options) > 0 {
		q["correct"] = float64(len(options) - 1)
	}
	return nil
}

// SetCorrect marks the correct option of a question
func (d *Draft) SetCorrect(questionIndex, optionIndex int) error {
	q, err := d.question(questionIndex)
	if err != nil {
		return err
	}
	options := arrayValue(q, "options")
	if optionIndex < 0 || optionIndex >= len(options) {
		return errIndex("option", optionIndex)
	}
	q["correct"] = float64(optionIndex)
	return nil
}

func (d *Draft) question(index int) (map[string]any, error) {
	questions := arrayValue(d.content, "questions")
	if index < 0 || index >= len(questions) {
		return nil, errIndex("question", index)
	}
	q, ok := questions[index].(map[string]any)
	if !ok {
		q = map[string]any{}
		questions[index] = q
	}
	return q, nil
}

// Supplementary block operations, available on every container type

// AddAlert appends a cross-cutting alert box; unknown severities fall
// back to warning
func (d *Draft) AddAlert(severity string) {
	switch Type(severity) {
	case TypeWarning, TypeSuccess, TypeDanger:
	default:
		severity = string(TypeWarning)
	}
	d.content[keyAlerts] = append(arrayValue(d.content, keyAlerts), map[string]any{
		"type":    severity,
		"title":   "",
		"message": "",
	})
}

// RemoveAlert deletes the alert box at an index
func (d *Draft) RemoveAlert(index int) error {
	return d.removeExtra(keyAlerts, index, "alert")
}

// AddNote appends an empty note
func (d *Draft) AddNote() {
	d.content[keyNotes] = append(arrayValue(d.content, keyNotes), "")
}

// UpdateNote replaces the note at an index
func (d *Draft) UpdateNote(index int, note string) error {
	notes := arrayValue(d.content, keyNotes)
	if index < 0 || index >= len(notes) {
		return errIndex("note", index)
	}
	notes[index] = note
	d.content[keyNotes] = notes
	return nil
}

// RemoveNote deletes the note at an index
func (d *Draft) RemoveNote(index int) error {
	return d.removeExtra(keyNotes, index, "note")
}

// AddInfoBox appends an empty info box
func (d *Draft) AddInfoBox() {
	d.content[keyInfoBoxes] = append(arrayValue(d.content, keyInfoBoxes), map[string]any{
		"title":   "",
		"content": "",
	})
}

// RemoveInfoBox deletes the info box at an index
func (d *Draft) RemoveInfoBox(index int) error {
	return d.removeExtra(keyInfoBoxes, index, "info box")
}

// AddTip appends an empty tip
func (d *Draft) AddTip() {
	d.content[keyTips] = append(arrayValue(d.content, keyTips), map[string]any{
		"title":   "",
		"content": "",
	})
}

// RemoveTip deletes the tip at an index
func (d *Draft) RemoveTip(index int) error {
	return d.removeExtra(keyTips, index, "tip")
}

func (d *Draft) removeExtra(key string, index int, what string) error {
	entries, err := removeAt(arrayValue(d.content, key), index, what)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		delete(d.content, key)
		return nil
	}
	d.content[key] = entries
	return nil
}

func removeAt(entries []any, index int, what string) ([]any, error) {
	if index < 0 || index >= len(entries) {
		return nil, errIndex(what, index)
	}
	return append(entries[:index], entries[index+1:]...), nil
}

func errIndex(what string, index int) error {
	return fmt.Errorf("no %s at index %d", what, index)
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
