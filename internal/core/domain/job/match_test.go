package job

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	type testcase struct {
		id       string
		text     string
		expected []string
	}
	cases := []testcase{
		{
			id:       "lowercases and drops short words",
			text:     "Go is a Programming Language",
			expected: []string{"programming", "language"},
		},
		{
			id:       "skips stop words",
			text:     "join our team and work with the best",
			expected: []string{"best"},
		},
		{
			id:       "keeps tech suffixes",
			text:     "We use C++, C# and Node.js in production",
			expected: []string{"c++", "c#", "node.js", "production"},
		},
		{
			id:       "keeps two-rune symbol tokens",
			text:     "F# or Go",
			expected: []string{"f#"},
		},
		{
			id:       "trims trailing periods",
			text:     "Experience with kubernetes.",
			expected: []string{"experience", "kubernetes"},
		},
		{
			id:       "empty text",
			text:     "",
			expected: []string{},
		},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			kw := ExtractKeywords(c.text)
			require.Len(t, kw, len(c.expected))
			for _, w := range c.expected {
				require.True(t, kw[w], fmt.Sprintf("keyword %q must be extracted", w))
			}
		})
	}
}

func TestScoreMatchIdenticalTexts(t *testing.T) {
	text := "golang postgresql kubernetes docker"
	score, matching, missing := ScoreMatch(ExtractKeywords(text), text)

	require.Equal(t, 100.0, score)
	require.Equal(t, []string{"docker", "golang", "kubernetes", "postgresql"}, matching)
	require.Empty(t, missing)
}

func TestScoreMatchDisjointTexts(t *testing.T) {
	score, matching, missing := ScoreMatch(
		ExtractKeywords("golang postgresql"),
		"python django",
	)

	require.Equal(t, 0.0, score)
	require.Empty(t, matching)
	require.Equal(t, []string{"django", "python"}, missing)
}

func TestScoreMatchPartialOverlap(t *testing.T) {
	// Intersection 2, union 4: 50.0.
	score, matching, missing := ScoreMatch(
		ExtractKeywords("golang postgresql redis"),
		"golang postgresql kafka",
	)

	require.Equal(t, 50.0, score)
	require.Equal(t, []string{"golang", "postgresql"}, matching)
	require.Equal(t, []string{"kafka"}, missing)
}

func TestScoreMatchRoundsToOneDecimal(t *testing.T) {
	// Intersection 1, union 3: 33.333... rounds to 33.3.
	score, _, _ := ScoreMatch(
		ExtractKeywords("golang"),
		"golang redis kafka",
	)

	require.Equal(t, 33.3, score)
}

func TestScoreMatchCapsMissingAtTwenty(t *testing.T) {
	jobText := ""
	for i := 0; i < 30; i++ {
		jobText += fmt.Sprintf("keyword%02d ", i)
	}

	_, _, missing := ScoreMatch(ExtractKeywords("golang"), jobText)

	require.Len(t, missing, 20)
}

func TestScoreMatchEmptyInputs(t *testing.T) {
	score, matching, missing := ScoreMatch(ExtractKeywords(""), "")

	require.Equal(t, 0.0, score)
	require.Empty(t, matching)
	require.Empty(t, missing)
}
