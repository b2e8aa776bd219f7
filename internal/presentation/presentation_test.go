package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/recipebox/internal/recipe"
)

func TestFeedbackFor(t *testing.T) {
	reg := recipe.NewRegistry()

	accepted := reg.Submit("Pasta", "p.png")
	duplicate := reg.Submit("pasta", "q.png")
	blank := reg.Submit("", "q.png")

	require.Equal(t, Feedback{Message: "Added Pasta", Severity: SeveritySuccess}, FeedbackFor(accepted))
	require.Equal(t, Feedback{Message: MsgDuplicate, Severity: SeverityError}, FeedbackFor(duplicate))
	require.Equal(t, Feedback{Message: MsgBlank, Severity: SeverityWarn}, FeedbackFor(blank))
}

func TestImageKind(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"http://img/p.png", ImageKindURL},
		{"HTTPS://example.com/a.jpg", ImageKindURL},
		{"file:///tmp/a.png", ImageKindFile},
		{"/var/images/a.png", ImageKindFile},
		{"./a.png", ImageKindFile},
		{"~/pics/a.png", ImageKindFile},
		{"a.png", ImageKindOther},
		{"ftp://example.com/a.png", ImageKindOther},
		{"not a url", ImageKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			require.Equal(t, tt.want, ImageKind(tt.ref))
		})
	}
}

func TestFromItems_PreservesOrder(t *testing.T) {
	reg := recipe.NewRegistry()
	reg.Submit("A", "http://img/a.png")
	reg.Submit("B", "b.png")

	dtos := FromItems(reg.List())

	require.Equal(t, []RecipeDTO{
		{Label: "A", ImageRef: "http://img/a.png", ImageKind: ImageKindURL},
		{Label: "B", ImageRef: "b.png", ImageKind: ImageKindOther},
	}, dtos)
}

func TestFormatter_FormatRecipes(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatRecipes([]RecipeDTO{{Label: "Soup", ImageRef: "s.png", ImageKind: ImageKindOther}}))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "Soup", decoded[0]["label"])
	require.Equal(t, "s.png", decoded[0]["image_ref"])
}

func TestFormatter_FormatRecipes_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatRecipes(nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatter_FormatTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatTable([]RecipeDTO{
		{Label: "Pasta", ImageRef: "p.png"},
		{Label: "Crème brûlée", ImageRef: "c.png"},
	})
	require.NoError(t, err)

	want := "LABEL         IMAGE\n" +
		"Pasta         p.png\n" +
		"Crème brûlée  c.png\n"
	require.Equal(t, want, buf.String())
}

func TestFormatter_FormatTable_TruncatesLongLabels(t *testing.T) {
	var buf bytes.Buffer
	long := "An extraordinarily long recipe name that keeps going"

	require.NoError(t, NewFormatter(&buf).FormatTable([]RecipeDTO{{Label: long, ImageRef: "x.png"}}))

	require.Contains(t, buf.String(), "…  x.png")
	require.NotContains(t, buf.String(), "keeps going")
}

func TestFormatter_FormatFeedback(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatFeedback(Feedback{Message: MsgDuplicate, Severity: SeverityError}))
	require.NoError(t, f.FormatFeedback(Feedback{Message: "Added Soup", Severity: SeveritySuccess}))

	require.Equal(t, "error: The recipe already exists\nok: Added Soup\n", buf.String())
}
