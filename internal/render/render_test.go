package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
)

func analyze(t *testing.T, input string) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Run(strings.NewReader(input), pipeline.Options{Label: "concepts"})
	require.NoError(t, err)
	return res
}

func TestView_ContainsTableAndMetrics(t *testing.T) {
	res := pipeline.Example("concepts")
	out := View(DefaultStyles(), res, 0)

	assert.Contains(t, out, "Interview Concepts Analysis")
	assert.Contains(t, out, "Cumulative Unique Concepts")
	assert.Contains(t, out, "Total Interviews")
	assert.Contains(t, out, "13.8")
	assert.Contains(t, out, "7.8")
	assert.Contains(t, out, "39")
	assert.NotContains(t, out, "dropped")
}

func TestView_DroppedRowNotice(t *testing.T) {
	res := analyze(t, "a,b,c\n1,10,10\nx,y,z\n")
	out := View(DefaultStyles(), res, 0)
	assert.Contains(t, out, "1 row(s) dropped")
}

func TestTable_TruncatesPreview(t *testing.T) {
	res := pipeline.Example("concepts")
	out := Table(DefaultStyles(), res, 2)
	assert.Contains(t, out, "3 more row(s)")
	assert.NotContains(t, out, "33")
}

func TestTable_WholeNumbersHaveNoDecimalTail(t *testing.T) {
	res := pipeline.Example("themes")
	out := Table(DefaultStyles(), res, 0)
	assert.Contains(t, out, "18")
	assert.NotContains(t, out, "18.000000")
}

func TestFailure(t *testing.T) {
	t.Run("structural", func(t *testing.T) {
		out := Failure(DefaultStyles(), &pipeline.StructuralError{Columns: 2})
		assert.Contains(t, out, "at least 3 columns")
		assert.Contains(t, out, "used by position")
	})

	t.Run("all rows filtered", func(t *testing.T) {
		_, err := pipeline.Run(strings.NewReader("a,b,c\nx,y,z\n"), pipeline.Options{})
		require.Error(t, err)
		out := Failure(DefaultStyles(), err)
		assert.Contains(t, out, "No usable rows")
		assert.Contains(t, out, "Expected CSV format")
	})
}
