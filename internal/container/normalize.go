package container

import (
	"encoding/json"
)

// Normalize repairs arbitrary content JSON into the canonical shape
// for a container type and reports the type it settled on. The rules
// run in a fixed order and the first structural match wins; hint is
// only consulted when no structure is recognized. Never panics: nil,
// scalar, and malformed input degrade to the lowest-information
// representation.
func Normalize(raw any, hint Type) (Type, map[string]any) {
	switch v := raw.(type) {
	case nil:
		t := hint
		if !t.Valid() {
			t = TypeText
		}
		return t, EmptyContent(t)
	case string:
		return TypeText, withExtras(map[string]any{"text": v}, nil)
	case map[string]any:
		return normalizeMap(v, hint)
	default:
		return TypeText, map[string]any{"text": stringify(v)}
	}
}

// NormalizeRaw is the json.RawMessage convenience wrapper used at the
// API boundary before content is persisted.
func NormalizeRaw(raw json.RawMessage, hint string) (string, json.RawMessage) {
	hintType, _ := ParseType(hint)
	var decoded any
	if len(raw) > 0 {
		// malformed JSON is treated as absent content
		_ = json.Unmarshal(raw, &decoded)
	}
	t, content := Normalize(decoded, hintType)
	encoded, err := json.Marshal(content)
	if err != nil {
		encoded = []byte(`{}`)
	}
	return string(t), encoded
}

func normalizeMap(m map[string]any, hint Type) (Type, map[string]any) {
	// 1. Tab structures
	if tabs, ok := m["tabs"].([]any); ok {
		return TypeTabs, withExtras(map[string]any{"tabs": normalizeTabs(tabs)}, m)
	}

	// 2. Procedure steps
	if _, ok := m["steps"]; ok {
		return TypeProcedure, withExtras(map[string]any{"steps": normalizeSteps(arrayValue(m, "steps"))}, m)
	}

	// 3. Plain list items
	if _, ok := m["items"]; ok {
		return TypeList, withExtras(map[string]any{"items": normalizeItems(arrayValue(m, "items"))}, m)
	}

	// 4. Grid structures, possibly nested under a legacy "table" key
	if hasGridShape(m) {
		table := mapValue(m, "table")
		headers := arrayValue(m, "headers")
		rows := arrayValue(m, "rows")
		if headers == nil && table != nil {
			headers = arrayValue(table, "headers")
		}
		if rows == nil && table != nil {
			rows = arrayValue(table, "rows")
		}
		if rows == nil {
			if s, ok := m["rows"].(string); ok {
				rows = []any{s}
			}
		}
		return TypeGrid, withExtras(map[string]any{
			"headers": normalizeHeaders(headers),
			"rows":    normalizeRows(rows),
		}, m)
	}

	// 5. Typed alert structures; legacy "info" maps to warning
	if alertType, ok := alertTypeOf(m); ok {
		message := stringValue(m, "message")
		if message == "" {
			message = FlattenText(m)
		}
		content := map[string]any{
			"title":   stringValue(m, "title"),
			"message": message,
		}
		if alertType == TypeDanger {
			carryDangerFields(content, m)
		}
		return alertType, withExtras(content, m)
	}

	// 6. Quiz structures, possibly nested under a legacy "quiz" key
	if _, ok := m["questions"]; ok {
		return TypeQuiz, withExtras(normalizeQuiz(m, arrayValue(m, "questions")), m)
	}
	if quiz := mapValue(m, "quiz"); quiz != nil {
		title := stringValue(m, "title")
		if title == "" {
			title = stringValue(quiz, "title")
		}
		content := normalizeQuiz(quiz, arrayValue(quiz, "questions"))
		content["title"] = title
		return TypeQuiz, withExtras(content, m)
	}

	// 7. Anything else with nested structure flattens to plain text
	if hasComplexStructure(m) {
		return TypeText, withExtras(map[string]any{"text": FlattenText(m)}, m)
	}

	// 8. Flat content with no recognizable structure: keep the declared
	// type and project onto its canonical fields
	t := hint
	if !t.Valid() {
		if detected, ok := Detect(m); ok {
			t = detected
		} else {
			t = TypeText
		}
	}
	return t, canonicalize(t, m)
}

// Detect suggests a container type from content structure alone. It is
// the lighter-weight companion to Normalize used to offer a "switch
// editor" hint for content whose declared type does not match its
// shape; it never mutates the content.
func Detect(content map[string]any) (Type, bool) {
	if content == nil {
		return "", false
	}
	if _, ok := content["tabs"].([]any); ok {
		return TypeTabs, true
	}
	if _, ok := content["steps"].([]any); ok {
		return TypeProcedure, true
	}
	if _, ok := content["items"].([]any); ok {
		return TypeList, true
	}
	if _, ok := content["questions"].([]any); ok {
		return TypeQuiz, true
	}
	if _, hasHeaders := content["headers"]; hasHeaders {
		if _, hasRows := content["rows"]; hasRows {
			return TypeGrid, true
		}
	}
	switch Type(stringValue(content, "type")) {
	case TypeWarning, TypeSuccess, TypeDanger:
		return Type(stringValue(content, "type")), true
	}
	if stringValue(content, "title") != "" && stringValue(content, "message") != "" {
		return TypeWarning, true
	}
	return "", false
}

func hasGridShape(m map[string]any) bool {
	if _, ok := m["headers"]; ok {
		return true
	}
	if _, ok := m["rows"]; ok {
		return true
	}
	if _, ok := m["table"]; ok {
		return true
	}
	return false
}

func alertTypeOf(m map[string]any) (Type, bool) {
	switch stringValue(m, "type") {
	case "warning", "info":
		return TypeWarning, true
	case "success":
		return TypeSuccess, true
	case "danger":
		return TypeDanger, true
	}
	return "", false
}

func normalizeTabs(tabs []any) []any {
	out := make([]any, 0, len(tabs))
	for _, raw := range tabs {
		tab, _ := raw.(map[string]any)
		title := ""
		var content any
		if tab != nil {
			title = stringValue(tab, "title")
			content = tab["content"]
		} else {
			content = raw
		}
		out = append(out, map[string]any{
			"title":   title,
			"content": FlattenText(content),
		})
	}
	return out
}

func normalizeSteps(steps []any) []any {
	out := make([]any, 0, len(steps))
	for _, raw := range steps {
		step, _ := raw.(map[string]any)
		if step == nil {
			out = append(out, map[string]any{
				"icon":        "",
				"title":       "",
				"description": FlattenText(raw),
			})
			continue
		}
		description := stringValue(step, "description")
		if description == "" {
			description = FlattenText(step)
		}
		out = append(out, map[string]any{
			"icon":        stringValue(step, "icon"),
			"title":       stringValue(step, "title"),
			"description": description,
		})
	}
	return out
}

func normalizeItems(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, FlattenText(item))
	}
	return out
}

func normalizeHeaders(headers []any) []any {
	out := make([]any, 0, len(headers))
	for _, h := range headers {
		out = append(out, stringify(h))
	}
	return out
}

// normalizeRows repairs every supported row encoding to string[][]
func normalizeRows(rows []any) []any {
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		cells := SplitCells(row)
		encoded := make([]any, 0, len(cells))
		for _, c := range cells {
			encoded = append(encoded, c)
		}
		out = append(out, encoded)
	}
	return out
}

func normalizeQuiz(m map[string]any, questions []any) map[string]any {
	out := make([]any, 0, len(questions))
	for _, raw := range questions {
		q, _ := raw.(map[string]any)
		if q == nil {
			continue
		}
		question := stringValue(q, "question")
		if question == "" {
			question = stringValue(q, "text")
		}
		options := arrayValue(q, "options")
		if options == nil {
			options = arrayValue(q, "answers")
		}
		if options == nil {
			options = []any{"", ""}
		}
		out = append(out, map[string]any{
			"question": question,
			"options":  normalizeItems(options),
			"correct":  correctIndex(q),
		})
	}
	return map[string]any{
		"title":     stringValue(m, "title"),
		"questions": out,
	}
}

func correctIndex(q map[string]any) float64 {
	if f, ok := q["correct"].(float64); ok {
		return f
	}
	if f, ok := q["correctAnswer"].(float64); ok {
		return f
	}
	return 0
}

// canonicalize projects flat content onto the canonical fields of a
// type, filling gaps with zero values. Used when no structural rule
// matched and the declared type is trusted.
func canonicalize(t Type, m map[string]any) map[string]any {
	var content map[string]any
	switch t {
	case TypeList:
		content = map[string]any{"items": normalizeItems(arrayValue(m, "items"))}
	case TypeProcedure:
		content = map[string]any{"steps": normalizeSteps(arrayValue(m, "steps"))}
	case TypeGrid:
		content = map[string]any{
			"headers": normalizeHeaders(arrayValue(m, "headers")),
			"rows":    normalizeRows(arrayValue(m, "rows")),
		}
	case TypeTabs:
		content = map[string]any{"tabs": normalizeTabs(arrayValue(m, "tabs"))}
	case TypeWarning, TypeSuccess, TypeDanger:
		content = map[string]any{
			"title":   stringValue(m, "title"),
			"message": stringValue(m, "message"),
		}
		if t == TypeDanger {
			carryDangerFields(content, m)
		}
	case TypeQuiz:
		content = normalizeQuiz(m, arrayValue(m, "questions"))
	default:
		text := stringValue(m, "text")
		if text == "" {
			stripped := withoutKeys(m, structuredKeys)
			text = FlattenText(stripped)
		}
		content = map[string]any{"text": text}
		if note := stringValue(m, "note"); note != "" {
			content["note"] = note
		}
		if sections := arrayValue(m, "sections"); sections != nil {
			content["sections"] = sections
		}
	}
	return withExtras(content, m)
}

func carryDangerFields(content, m map[string]any) {
	if warning := stringValue(m, "warning"); warning != "" {
		content["warning"] = warning
	}
	if contacts := arrayValue(m, "contacts"); contacts != nil {
		content["contacts"] = contacts
	}
}

// withExtras carries the cross-cutting supplementary blocks (alerts,
// notes, infoBoxes, tips) onto normalized content when present on the
// source map. They render on any container type.
func withExtras(content, source map[string]any) map[string]any {
	if source == nil {
		return content
	}
	for _, key := range extraKeys {
		if extras := arrayValue(source, key); extras != nil {
			content[key] = extras
		}
	}
	return content
}

func withoutKeys(m map[string]any, skip map[string]bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if skip[k] {
			continue
		}
		out[k] = v
	}
	return out
}
