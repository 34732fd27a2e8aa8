package container

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftStartsEmpty(t *testing.T) {
	for _, ct := range Types {
		d := NewDraft(ct)
		assert.Equal(t, ct, d.Type())
		assert.Equal(t, EmptyContent(ct), d.Content())
	}
}

func TestNewDraftUnknownTypeFallsBackToText(t *testing.T) {
	d := NewDraft(Type("bogus"))
	assert.Equal(t, TypeText, d.Type())
}

func TestLoadDraftRepairsContent(t *testing.T) {
	d := LoadDraft(json.RawMessage(`{"items":["a","b"],"junk":true}`), TypeText)
	assert.Equal(t, TypeList, d.Type())
	assert.Equal(t, map[string]any{"items": []any{"a", "b"}}, d.Content())
}

func TestSwitchTypeResetsContent(t *testing.T) {
	d := NewDraft(TypeList)
	d.AddListItem("keep me not")

	require.NoError(t, d.SwitchType(TypeGrid))
	assert.Equal(t, TypeGrid, d.Type())
	assert.Equal(t, EmptyContent(TypeGrid), d.Content())

	assert.Error(t, d.SwitchType(Type("bogus")))
	assert.Equal(t, TypeGrid, d.Type())
}

func TestDraftContentIsACopy(t *testing.T) {
	d := NewDraft(TypeList)
	d.AddListItem("a")

	leaked := d.Content()
	leaked["items"] = []any{"tampered"}

	assert.Equal(t, map[string]any{"items": []any{"a"}}, d.Content())
}

func TestListOperations(t *testing.T) {
	d := NewDraft(TypeList)
	d.AddListItem("first")
	d.AddListItem("second")

	require.NoError(t, d.UpdateListItem(1, "revised"))
	require.NoError(t, d.RemoveListItem(0))
	assert.Equal(t, map[string]any{"items": []any{"revised"}}, d.Content())

	assert.Error(t, d.UpdateListItem(5, "x"))
	assert.Error(t, d.RemoveListItem(-1))
}

func TestStepOperations(t *testing.T) {
	d := NewDraft(TypeProcedure)
	d.AddStep()
	require.NoError(t, d.UpdateStep(0, "1", "Prepare", "gather materials"))

	content := d.Content()
	steps := content["steps"].([]any)
	require.Len(t, steps, 1)
	assert.Equal(t, map[string]any{
		"icon":        "1",
		"title":       "Prepare",
		"description": "gather materials",
	}, steps[0])

	require.NoError(t, d.RemoveStep(0))
	assert.Empty(t, d.Content()["steps"])
	assert.Error(t, d.RemoveStep(0))
}

func TestTabOperations(t *testing.T) {
	d := NewDraft(TypeTabs)
	d.AddTab()
	d.AddTab()
	require.NoError(t, d.UpdateTab(1, "Second", "body"))
	require.NoError(t, d.RemoveTab(0))

	tabs := d.Content()["tabs"].([]any)
	require.Len(t, tabs, 1)
	assert.Equal(t, map[string]any{"title": "Second", "content": "body"}, tabs[0])
}

func TestGridOperations(t *testing.T) {
	d := NewDraft(TypeGrid)
	d.SetHeaders([]string{"Name", "Role"})
	d.AddRow([]string{"Ana", "admin"})
	d.AddRow([]string{"placeholder", "x"})

	// a row edited through a plain text input arrives comma-joined
	require.NoError(t, d.UpdateRow(1, "Ben, editor"))

	content := d.Content()
	assert.Equal(t, []any{"Name", "Role"}, content["headers"])
	rows := content["rows"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"Ana", "admin"}, rows[0])
	assert.Equal(t, []any{"Ben", "editor"}, rows[1])

	require.NoError(t, d.RemoveRow(0))
	assert.Error(t, d.UpdateRow(9, "x"))
}

func TestQuizOperations(t *testing.T) {
	d := NewDraft(TypeQuiz)
	d.SetQuizTitle("Safety check")
	d.AddQuestion()
	require.NoError(t, d.UpdateQuestion(0, "Exit where?"))
	require.NoError(t, d.UpdateOption(0, 0, "front"))
	require.NoError(t, d.UpdateOption(0, 1, "back"))
	require.NoError(t, d.AddOption(0))
	require.NoError(t, d.UpdateOption(0, 2, "roof"))
	require.NoError(t, d.SetCorrect(0, 2))

	content := d.Content()
	assert.Equal(t, "Safety check", content["title"])
	q := content["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, "Exit where?", q["question"])
	assert.Equal(t, []any{"front", "back", "roof"}, q["options"])
	assert.Equal(t, float64(2), q["correct"])

	// removing the correct option clamps the index back into range
	require.NoError(t, d.RemoveOption(0, 2))
	q = d.Content()["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1), q["correct"])

	assert.Error(t, d.SetCorrect(0, 9))
	assert.Error(t, d.SetCorrect(3, 0))

	require.NoError(t, d.RemoveQuestion(0))
	assert.Empty(t, d.Content()["questions"])
}

func TestSupplementaryBlockOperations(t *testing.T) {
	d := NewDraft(TypeText)
	d.SetText("body")

	d.AddAlert("mystery")
	d.AddNote()
	require.NoError(t, d.UpdateNote(0, "remember this"))
	d.AddInfoBox()
	d.AddTip()

	content := d.Content()
	alerts := content["alerts"].([]any)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].(map[string]any)["type"])
	assert.Equal(t, []any{"remember this"}, content["notes"])
	require.Len(t, content["infoBoxes"], 1)
	require.Len(t, content["tips"], 1)

	// removing the last entry drops the key entirely
	require.NoError(t, d.RemoveAlert(0))
	require.NoError(t, d.RemoveNote(0))
	require.NoError(t, d.RemoveInfoBox(0))
	require.NoError(t, d.RemoveTip(0))
	assert.Equal(t, map[string]any{"text": "body"}, d.Content())

	assert.Error(t, d.RemoveNote(0))
}

func TestSuggest(t *testing.T) {
	t.Run("shape mismatch suggests a switch", func(t *testing.T) {
		d := LoadDraft(json.RawMessage(`{"text":"body"}`), TypeText)
		d.content["steps"] = []any{map[string]any{"title": "s"}}
		suggested, ok := d.Suggest()
		require.True(t, ok)
		assert.Equal(t, TypeProcedure, suggested)
	})

	t.Run("matching shape suggests nothing", func(t *testing.T) {
		d := NewDraft(TypeList)
		d.AddListItem("a")
		_, ok := d.Suggest()
		assert.False(t, ok)
	})
}
