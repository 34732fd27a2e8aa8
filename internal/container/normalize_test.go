package container

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNilAndScalars(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		hint        Type
		wantType    Type
		wantContent map[string]any
	}{
		{
			name:        "nil with valid hint returns empty shape",
			input:       nil,
			hint:        TypeList,
			wantType:    TypeList,
			wantContent: map[string]any{"items": []any{}},
		},
		{
			name:        "nil without hint defaults to text",
			input:       nil,
			hint:        Type("bogus"),
			wantType:    TypeText,
			wantContent: map[string]any{"text": ""},
		},
		{
			name:        "bare string becomes text body",
			input:       "hello world",
			hint:        TypeGrid,
			wantType:    TypeText,
			wantContent: map[string]any{"text": "hello world"},
		},
		{
			name:        "number stringifies without trailing fraction",
			input:       float64(42),
			hint:        TypeText,
			wantType:    TypeText,
			wantContent: map[string]any{"text": "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotContent := Normalize(tt.input, tt.hint)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantContent, gotContent)
		})
	}
}

func TestNormalizePrecedence(t *testing.T) {
	t.Run("tabs win over every other structure", func(t *testing.T) {
		input := map[string]any{
			"tabs":  []any{map[string]any{"title": "A", "content": "body"}},
			"steps": []any{map[string]any{"title": "ignored"}},
			"items": []any{"ignored"},
		}
		gotType, content := Normalize(input, TypeList)
		assert.Equal(t, TypeTabs, gotType)
		require.Contains(t, content, "tabs")
		assert.NotContains(t, content, "steps")
		assert.NotContains(t, content, "items")
	})

	t.Run("steps win over items", func(t *testing.T) {
		input := map[string]any{
			"steps": []any{map[string]any{"title": "Step 1", "description": "do it"}},
			"items": []any{"ignored"},
		}
		gotType, content := Normalize(input, TypeList)
		assert.Equal(t, TypeProcedure, gotType)
		assert.Contains(t, content, "steps")
		assert.NotContains(t, content, "items")
	})

	t.Run("items win over grid shape", func(t *testing.T) {
		input := map[string]any{
			"items":   []any{"a", "b"},
			"headers": []any{"h"},
		}
		gotType, _ := Normalize(input, TypeGrid)
		assert.Equal(t, TypeList, gotType)
	})
}

func TestNormalizeTabs(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{"string content passes through", "hello", "hello"},
		{"object prefers text field", map[string]any{"text": "hello"}, "hello"},
		{"object falls back to message", map[string]any{"message": "x"}, "x"},
		{"empty object flattens to empty string", map[string]any{}, ""},
		{"array joins with newlines", []any{"a", "b"}, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]any{"tabs": []any{map[string]any{"title": "T", "content": tt.content}}}
			gotType, content := Normalize(input, TypeTabs)
			require.Equal(t, TypeTabs, gotType)
			tabs := content["tabs"].([]any)
			require.Len(t, tabs, 1)
			tab := tabs[0].(map[string]any)
			assert.Equal(t, "T", tab["title"])
			assert.Equal(t, tt.want, tab["content"])
		})
	}
}

func TestNormalizeGridRowForms(t *testing.T) {
	// the three accepted row encodings produce identical cells
	rowForms := []any{
		"a, b, c",
		[]any{"a, b, c"},
		[]any{"a", "b", "c"},
	}
	for _, row := range rowForms {
		input := map[string]any{
			"headers": []any{"H1", "H2", "H3"},
			"rows":    []any{row},
		}
		gotType, content := Normalize(input, TypeGrid)
		require.Equal(t, TypeGrid, gotType)
		rows := content["rows"].([]any)
		require.Len(t, rows, 1)
		assert.Equal(t, []any{"a", "b", "c"}, rows[0])
	}
}

func TestNormalizeGridLegacyTableKey(t *testing.T) {
	input := map[string]any{
		"table": map[string]any{
			"headers": []any{"Name", "Role"},
			"rows":    []any{[]any{"Ana", "admin"}},
		},
	}
	gotType, content := Normalize(input, TypeText)
	assert.Equal(t, TypeGrid, gotType)
	assert.Equal(t, []any{"Name", "Role"}, content["headers"])
	assert.Equal(t, []any{[]any{"Ana", "admin"}}, content["rows"])
}

func TestNormalizeAlerts(t *testing.T) {
	t.Run("info maps to warning", func(t *testing.T) {
		input := map[string]any{"type": "info", "title": "Heads up", "message": "careful"}
		gotType, content := Normalize(input, TypeText)
		assert.Equal(t, TypeWarning, gotType)
		assert.Equal(t, "Heads up", content["title"])
		assert.Equal(t, "careful", content["message"])
	})

	t.Run("missing message flattens the object", func(t *testing.T) {
		input := map[string]any{"type": "success", "title": "Done", "description": "all good"}
		gotType, content := Normalize(input, TypeText)
		assert.Equal(t, TypeSuccess, gotType)
		assert.Equal(t, "all good", content["message"])
	})

	t.Run("danger keeps warning and contacts", func(t *testing.T) {
		input := map[string]any{
			"type":     "danger",
			"title":    "Emergency",
			"message":  "evacuate",
			"warning":  "immediately",
			"contacts": []any{map[string]any{"icon": "phone", "title": "911"}},
		}
		gotType, content := Normalize(input, TypeText)
		assert.Equal(t, TypeDanger, gotType)
		assert.Equal(t, "immediately", content["warning"])
		require.Len(t, content["contacts"], 1)
	})
}

func TestNormalizeQuiz(t *testing.T) {
	t.Run("legacy answers and correctAnswer fields", func(t *testing.T) {
		input := map[string]any{
			"questions": []any{map[string]any{
				"text":          "Pick one",
				"answers":       []any{"yes", "no"},
				"correctAnswer": float64(1),
			}},
		}
		gotType, content := Normalize(input, TypeText)
		require.Equal(t, TypeQuiz, gotType)
		questions := content["questions"].([]any)
		require.Len(t, questions, 1)
		q := questions[0].(map[string]any)
		assert.Equal(t, "Pick one", q["question"])
		assert.Equal(t, []any{"yes", "no"}, q["options"])
		assert.Equal(t, float64(1), q["correct"])
	})

	t.Run("nested quiz key with outer title", func(t *testing.T) {
		input := map[string]any{
			"title": "Outer",
			"quiz": map[string]any{
				"title":     "Inner",
				"questions": []any{map[string]any{"question": "Q", "options": []any{"a", "b"}}},
			},
		}
		gotType, content := Normalize(input, TypeText)
		require.Equal(t, TypeQuiz, gotType)
		assert.Equal(t, "Outer", content["title"])
	})

	t.Run("missing correct index defaults to zero", func(t *testing.T) {
		input := map[string]any{
			"questions": []any{map[string]any{"question": "Q", "options": []any{"a", "b"}}},
		}
		_, content := Normalize(input, TypeQuiz)
		q := content["questions"].([]any)[0].(map[string]any)
		assert.Equal(t, float64(0), q["correct"])
	})
}

func TestNormalizeComplexFlattensToText(t *testing.T) {
	input := map[string]any{
		"meta": map[string]any{"description": "nested thing"},
	}
	gotType, content := Normalize(input, TypeText)
	assert.Equal(t, TypeText, gotType)
	assert.Equal(t, "nested thing", content["text"])
}

func TestNormalizeFlatContentKeepsHint(t *testing.T) {
	input := map[string]any{"text": "plain body", "stray": "value"}
	gotType, content := Normalize(input, TypeText)
	assert.Equal(t, TypeText, gotType)
	assert.Equal(t, "plain body", content["text"])
	assert.NotContains(t, content, "stray")
}

func TestNormalizeCanonicalFieldsOnly(t *testing.T) {
	// every normalized result contains only the canonical fields of its
	// type plus the shared supplementary keys
	canonical := map[Type]map[string]bool{
		TypeText:      {"text": true, "note": true, "sections": true},
		TypeList:      {"items": true},
		TypeProcedure: {"steps": true},
		TypeGrid:      {"headers": true, "rows": true},
		TypeTabs:      {"tabs": true},
		TypeWarning:   {"title": true, "message": true},
		TypeSuccess:   {"title": true, "message": true},
		TypeDanger:    {"title": true, "message": true, "warning": true, "contacts": true},
		TypeQuiz:      {"title": true, "questions": true},
	}
	shared := map[string]bool{"alerts": true, "notes": true, "infoBoxes": true, "tips": true}

	inputs := []any{
		nil,
		"just text",
		map[string]any{"tabs": []any{"a"}, "junk": 1},
		map[string]any{"steps": []any{map[string]any{"title": "s"}}, "extra": "x"},
		map[string]any{"items": []any{"a"}, "noise": true},
		map[string]any{"headers": []any{"h"}, "rows": []any{"a, b"}, "legacy": "y"},
		map[string]any{"type": "danger", "message": "m", "leftover": "z"},
		map[string]any{"questions": []any{map[string]any{"question": "q"}}, "cruft": 9},
		map[string]any{"deep": map[string]any{"text": "t"}},
	}

	for _, input := range inputs {
		gotType, content := Normalize(input, TypeText)
		allowed := canonical[gotType]
		require.NotNil(t, allowed, "unexpected type %s", gotType)
		for key := range content {
			assert.True(t, allowed[key] || shared[key], "type %s leaked key %q", gotType, key)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []any{
		"plain string",
		map[string]any{"tabs": []any{map[string]any{"title": "T", "content": map[string]any{"text": "x"}}}},
		map[string]any{"steps": []any{map[string]any{"icon": "i", "title": "t", "description": "d"}}},
		map[string]any{"items": []any{"a", float64(2)}},
		map[string]any{"headers": []any{"h1", "h2"}, "rows": []any{"a, b"}},
		map[string]any{"type": "danger", "title": "T", "message": "M", "warning": "W",
			"contacts": []any{map[string]any{"icon": "p", "title": "911"}}},
		map[string]any{"questions": []any{map[string]any{"question": "q", "options": []any{"a", "b"}, "correct": float64(1)}}},
		map[string]any{"text": "body", "notes": []any{"remember"}},
	}

	for _, input := range inputs {
		t1, c1 := Normalize(input, TypeText)
		t2, c2 := Normalize(c1, t1)
		assert.Equal(t, t1, t2)
		assert.Equal(t, c1, c2)
	}
}

func TestNormalizeCarriesSupplementaryBlocks(t *testing.T) {
	input := map[string]any{
		"items": []any{"a"},
		"notes": []any{"keep me"},
		"tips":  []any{map[string]any{"title": "T", "content": "C"}},
	}
	gotType, content := Normalize(input, TypeText)
	assert.Equal(t, TypeList, gotType)
	assert.Equal(t, []any{"keep me"}, content["notes"])
	require.Len(t, content["tips"], 1)
}

func TestNormalizeRaw(t *testing.T) {
	t.Run("malformed JSON degrades to empty shape", func(t *testing.T) {
		gotType, encoded := NormalizeRaw(json.RawMessage(`{not json`), "list")
		assert.Equal(t, "list", gotType)
		assert.JSONEq(t, `{"items":[]}`, string(encoded))
	})

	t.Run("valid content round-trips", func(t *testing.T) {
		gotType, encoded := NormalizeRaw(json.RawMessage(`{"items":["a","b"]}`), "list")
		assert.Equal(t, "list", gotType)
		assert.JSONEq(t, `{"items":["a","b"]}`, string(encoded))
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content map[string]any
		want    Type
		wantOK  bool
	}{
		{"tabs array", map[string]any{"tabs": []any{}}, TypeTabs, true},
		{"steps array", map[string]any{"steps": []any{}}, TypeProcedure, true},
		{"items array", map[string]any{"items": []any{}}, TypeList, true},
		{"questions array", map[string]any{"questions": []any{}}, TypeQuiz, true},
		{"headers and rows", map[string]any{"headers": []any{}, "rows": []any{}}, TypeGrid, true},
		{"headers alone is not a grid", map[string]any{"headers": []any{}}, "", false},
		{"explicit danger type", map[string]any{"type": "danger"}, TypeDanger, true},
		{"title plus message suggests warning", map[string]any{"title": "t", "message": "m"}, TypeWarning, true},
		{"plain text detects nothing", map[string]any{"text": "body"}, "", false},
		{"nil content detects nothing", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"prefers text over title", map[string]any{"text": "a", "title": "b"}, "a"},
		{"skips empty preferred field", map[string]any{"text": "", "message": "m"}, "m"},
		{"recursive content field", map[string]any{"content": map[string]any{"text": "deep"}}, "deep"},
		{"array joins with newline", []any{"a", map[string]any{"text": "b"}}, "a\nb"},
		{"plain map concatenates sorted values", map[string]any{"z": "last", "a": "first"}, "first\nlast"},
		{"number", float64(3.5), "3.5"},
		{"integer number", float64(7), "7"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenText(tt.input))
		})
	}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma string", "a, b, c", []string{"a", "b", "c"}},
		{"single-element comma array", []any{"a, b, c"}, []string{"a", "b", "c"}},
		{"plain array", []any{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"single cell without comma", []any{"alone"}, []string{"alone"}},
		{"mixed value array", []any{"a", float64(2)}, []string{"a", "2"}},
		{"nil row", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCells(tt.input))
		})
	}
}
