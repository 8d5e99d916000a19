package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = `Interview_Number,Concepts_Collected,New_Concepts
1,10,10
2,15,8
3,12,5
4,18,10
5,14,6
`

func TestRun_ExampleScenario(t *testing.T) {
	res, err := Run(strings.NewReader(exampleInput), Options{Label: "concepts"})
	require.NoError(t, err)

	cumulative := make([]float64, 0, len(res.Dataset.Records))
	for _, rec := range res.Dataset.Records {
		cumulative = append(cumulative, rec.CumulativeUnique)
	}
	assert.Equal(t, []float64{10, 18, 23, 33, 39}, cumulative)

	assert.Equal(t, 5, res.Summary.TotalInterviews)
	assert.Equal(t, 39, res.Summary.TotalUniqueItems)
	assert.InDelta(t, 13.8, res.Summary.AvgItemsPerInterview, 1e-9)
	assert.InDelta(t, 7.8, res.Summary.AvgNewItemsPerInterview, 1e-9)
	assert.Equal(t, 0, res.Dataset.DroppedRows)
	assert.Equal(t, "concepts", res.Dataset.Label)
}

func TestRun_UnsortedInputMatchesSorted(t *testing.T) {
	unsorted := `Interview_Number,Concepts_Collected,New_Concepts
3,12,5
1,10,10
5,14,6
2,15,8
4,18,10
`
	want, err := Run(strings.NewReader(exampleInput), Options{})
	require.NoError(t, err)
	got, err := Run(strings.NewReader(unsorted), Options{})
	require.NoError(t, err)

	if diff := cmp.Diff(want.Dataset.Records, got.Dataset.Records); diff != "" {
		t.Errorf("records mismatch after sorting (-want +got):\n%s", diff)
	}
	assert.Equal(t, want.Summary, got.Summary)
}

func TestRun_Idempotent(t *testing.T) {
	first, err := Run(strings.NewReader(exampleInput), Options{Label: "themes"})
	require.NoError(t, err)
	second, err := Run(strings.NewReader(exampleInput), Options{Label: "themes"})
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestRun_CumulativeMonotonic(t *testing.T) {
	input := `n,collected,new
7,3,0
2,9,4
5,1,2
1,8,8
9,2,0
`
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)

	prev := -1.0
	for i, rec := range res.Dataset.Records {
		if rec.CumulativeUnique < prev {
			t.Fatalf("cumulative decreased at row %d: %v < %v", i, rec.CumulativeUnique, prev)
		}
		prev = rec.CumulativeUnique
	}
}

func TestRun_StructuralGate(t *testing.T) {
	t.Run("two columns rejected", func(t *testing.T) {
		_, err := Run(strings.NewReader("a,b\n1,2\n"), Options{})
		var se *StructuralError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.Columns)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := Run(strings.NewReader(""), Options{})
		var se *StructuralError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 0, se.Columns)
	})

	t.Run("three columns accepted", func(t *testing.T) {
		_, err := Run(strings.NewReader("a,b,c\n1,2,3\n"), Options{})
		assert.NoError(t, err)
	})
}

func TestRun_DegenerateInput(t *testing.T) {
	t.Run("all rows non-coercible", func(t *testing.T) {
		input := "a,b,c\nx,y,z\nfoo,bar,baz\n"
		_, err := Run(strings.NewReader(input), Options{})
		var pe *ProcessingError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "filtering", pe.Stage)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := Run(strings.NewReader("a,b,c\n"), Options{})
		var pe *ProcessingError
		require.ErrorAs(t, err, &pe)
	})
}

func TestRun_RowFiltering(t *testing.T) {
	input := `n,collected,new
1,10,10
two,15,8
3,,5
4,18,10
5,14,
`
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)

	// Row-count conservation: only fully numeric rows are retained, and
	// the drop count covers exactly the rest.
	assert.Equal(t, 2, res.Summary.TotalInterviews)
	assert.Equal(t, 3, res.Dataset.DroppedRows)

	// Sum correctness over the retained rows only.
	assert.Equal(t, 20, res.Summary.TotalUniqueItems)
}

func TestRun_ShortRowDropped(t *testing.T) {
	input := "n,collected,new\n1,10,10\n2,15\n3,12,5\n"
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalInterviews)
	assert.Equal(t, 1, res.Dataset.DroppedRows)
}

func TestRun_PositionalBinding(t *testing.T) {
	// Header names are display-only; binding is by position.
	input := `Zebra,Yak,Xenon,Note
2,15,8,later
1,10,10,first
`
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)

	require.Len(t, res.Dataset.Records, 2)
	assert.Equal(t, []string{"Zebra", "Yak", "Xenon", "Note"}, res.Dataset.Header)
	assert.Equal(t, 1.0, res.Dataset.Records[0].InterviewNumber)
	assert.Equal(t, []string{"first"}, res.Dataset.Records[0].Extra)
	assert.Equal(t, []string{"later"}, res.Dataset.Records[1].Extra)
}

func TestRun_StableSortOnTies(t *testing.T) {
	// Two rows share interview number 2; their relative input order must
	// survive the sort.
	input := `n,collected,new,tag
2,5,1,first-two
1,3,3,one
2,7,2,second-two
`
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)

	require.Len(t, res.Dataset.Records, 3)
	assert.Equal(t, []string{"one"}, res.Dataset.Records[0].Extra)
	assert.Equal(t, []string{"first-two"}, res.Dataset.Records[1].Extra)
	assert.Equal(t, []string{"second-two"}, res.Dataset.Records[2].Extra)
	assert.Equal(t, []float64{3, 4, 6}, []float64{
		res.Dataset.Records[0].CumulativeUnique,
		res.Dataset.Records[1].CumulativeUnique,
		res.Dataset.Records[2].CumulativeUnique,
	})
}

func TestRun_TruncatesTotalUniqueItems(t *testing.T) {
	input := "n,collected,new\n1,4,2.5\n2,6,1.4\n"
	res, err := Run(strings.NewReader(input), Options{})
	require.NoError(t, err)
	// 2.5 + 1.4 = 3.9 truncates to 3, not rounds to 4.
	assert.Equal(t, 3, res.Summary.TotalUniqueItems)
}

func TestRun_DefaultLabel(t *testing.T) {
	res, err := Run(strings.NewReader(exampleInput), Options{})
	require.NoError(t, err)
	assert.Equal(t, "items", res.Dataset.Label)
}

func TestExample(t *testing.T) {
	res := Example("concepts")
	require.Len(t, res.Dataset.Records, 5)
	assert.Equal(t, 39, res.Summary.TotalUniqueItems)
	assert.Equal(t, 5.0, res.Dataset.Records[4].InterviewNumber)
}

func TestErrors_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	pe := &ProcessingError{Stage: "read", Err: inner}
	assert.ErrorIs(t, pe, inner)
	assert.Contains(t, pe.Error(), "read")
}
