package braindump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "no keywords", text: "I feel a bit off today", want: []string{}},
		{name: "deadline and work in check order", text: "I have a deadline tomorrow for work", want: []string{"deadline", "work"}},
		{name: "case insensitive", text: "EXAM season", want: []string{"academic"}},
		{name: "one tag per category", text: "test after test after exam", want: []string{"academic"}},
		{name: "substring match", text: "feeling jobless", want: []string{"work"}},
		{name: "order ignores text position", text: "money, parents, friends, job, due, test", want: []string{"academic", "deadline", "social", "work", "family", "financial"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTags(tc.text)
			require.NotNil(t, got)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestExtractTagsAlwaysIncludesAcademicForExam(t *testing.T) {
	for _, text := range []string{"exam", "ExAm", "my EXAMS", "preexamination"} {
		require.Contains(t, ExtractTags(text), "academic", text)
	}
}

func TestExtractTagsOnlyKnownVocabulary(t *testing.T) {
	known := KnownTags()
	tags := ExtractTags("family money job friend deadline test relationship parent financial due work exam")
	require.Equal(t, known, tags)
}
