package mining_test

import (
	"errors"
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/apriori/itemset"
	"github.com/katalvlaran/apriori/mining"
)

// paperRows is the transaction database from Agrawal et al. (1994).
var paperRows = [][]int{{1, 3, 4}, {2, 3, 5}, {1, 2, 3, 5}, {2, 5}}

// MineSuite exercises Mine on small hand-checked inputs.
type MineSuite struct {
	suite.Suite
	quiet mining.Option
}

func (s *MineSuite) SetupTest() {
	logger, _ := logtest.NewNullLogger()
	s.quiet = mining.WithLogger(logger)
}

// TestPaper verifies every level of the classic example.
func (s *MineSuite) TestPaper() {
	levels, n, err := mining.Mine[int](mining.Materialize(paperRows), 0.4, s.quiet)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, n)
	require.Equal(s.T(), 3, levels.Len(), "no level 4")

	assert.Equal(s.T(), map[string]int{"(1)": 2, "(2)": 3, "(3)": 3, "(5)": 3}, levelMap(s.T(), levels, 1))
	assert.Equal(s.T(), map[string]int{"(1, 3)": 2, "(2, 3)": 2, "(2, 5)": 3, "(3, 5)": 2}, levelMap(s.T(), levels, 2))
	assert.Equal(s.T(), map[string]int{"(2, 3, 5)": 2}, levelMap(s.T(), levels, 3))

	l2, _ := levels.Level(2)
	assert.Equal(s.T(), []itemset.Itemset[int]{{1, 3}, {2, 3}, {2, 5}, {3, 5}}, l2.Itemsets(), "levels iterate sorted")
}

// TestFullSupportEmpty checks that min support 1.0 yields nothing when no item is in every row.
func (s *MineSuite) TestFullSupportEmpty() {
	levels, n, err := mining.Mine[int](mining.Materialize(paperRows), 1.0, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 4, n)
	assert.Equal(s.T(), 0, levels.Len())
	_, ok := levels.Level(1)
	assert.False(s.T(), ok)
}

// TestFullSupportUniversalItem checks that min support 1.0 keeps an item present everywhere.
func (s *MineSuite) TestFullSupportUniversalItem() {
	rows := [][]string{{"milk", "bread"}, {"milk"}, {"milk", "eggs"}}
	levels, _, err := mining.Mine[string](mining.Materialize(rows), 1.0, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]int{"(milk)": 3}, levelMap(s.T(), levels, 1))
	assert.Equal(s.T(), 1, levels.Len())
}

// TestDuplicatesCollapse ensures repeated items in one row count once.
func (s *MineSuite) TestDuplicatesCollapse() {
	rows := [][]string{{"a", "a", "a", "b"}, {"b", "b"}, {"a", "b", "a"}}
	levels, n, err := mining.Mine[string](mining.Materialize(rows), 0, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3, n)
	assert.Equal(s.T(), map[string]int{"(a)": 2, "(b)": 3}, levelMap(s.T(), levels, 1))
	assert.Equal(s.T(), map[string]int{"(a, b)": 2}, levelMap(s.T(), levels, 2))
}

// TestInclusiveThreshold keeps itemsets whose frequency equals min support exactly.
func (s *MineSuite) TestInclusiveThreshold() {
	levels, _, err := mining.Mine[int](mining.Materialize(paperRows), 0.5, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]int{"(2, 3, 5)": 2}, levelMap(s.T(), levels, 3), "2/4 == 0.5 is kept")

	levels, _, err = mining.Mine[int](mining.Materialize(paperRows), 0.75, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]int{"(2)": 3, "(3)": 3, "(5)": 3}, levelMap(s.T(), levels, 1))
	assert.Equal(s.T(), map[string]int{"(2, 5)": 3}, levelMap(s.T(), levels, 2))
}

// TestEmptyRows checks that empty rows are skipped and do not count toward N.
func (s *MineSuite) TestEmptyRows() {
	levels, n, err := mining.Mine[int](mining.Materialize([][]int{{1}, {}, {1, 2}, nil}), 1.0, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, n)
	assert.Equal(s.T(), map[string]int{"(1)": 2}, levelMap(s.T(), levels, 1))
}

// TestFactoryEmptyRowsCount streams empty rows as transactions, so they
// count toward N.
func (s *MineSuite) TestFactoryEmptyRowsCount() {
	src := mining.FromFactory(func() iter.Seq[[]int] {
		return slices.Values([][]int{{1}, {}})
	})

	levels, n, err := mining.Mine[int](src, 0.6, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, n)
	assert.Equal(s.T(), 0, levels.Len(), "1/2 is below 0.6")

	levels, n, err = mining.Mine[int](src, 0.5, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, n)
	assert.Equal(s.T(), map[string]int{"(1)": 1}, levelMap(s.T(), levels, 1))
}

// TestNoTransactions returns an empty collection and zero.
func (s *MineSuite) TestNoTransactions() {
	levels, n, err := mining.Mine[int](mining.Materialize[int](nil), 0, s.quiet)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, n)
	assert.Equal(s.T(), 0, levels.Len())
}

// TestMaxLength stops after the requested level.
func (s *MineSuite) TestMaxLength() {
	levels, _, err := mining.Mine[int](mining.Materialize(paperRows), 0.4, s.quiet, mining.WithMaxLength(2))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, levels.Len())

	levels, _, err = mining.Mine[int](mining.Materialize(paperRows), 0.4, s.quiet, mining.WithMaxLength(1))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, levels.Len())
}

// TestFactoryMatchesMaterialized streams the same rows and expects identical output.
func (s *MineSuite) TestFactoryMatchesMaterialized() {
	calls := 0
	src := mining.FromFactory(func() iter.Seq[[]int] {
		calls++
		return slices.Values(paperRows)
	})

	want, wantN, err := mining.Mine[int](mining.Materialize(paperRows), 0.4, s.quiet)
	require.NoError(s.T(), err)
	got, gotN, err := mining.Mine[int](src, 0.4, s.quiet)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), wantN, gotN)
	assertSameCollections(s.T(), want, got)
	// One pass for level 1 and one per counted level (2, 3); level 4 has no candidates.
	assert.Equal(s.T(), 3, calls)
}

func TestMineSuite(t *testing.T) {
	suite.Run(t, new(MineSuite))
}

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

// TestMine_Validation checks every invalid-input path and that none reads a row.
func TestMine_Validation(t *testing.T) {
	calls := 0
	counting := mining.FromFactory(func() iter.Seq[[]int] {
		calls++
		return slices.Values(paperRows)
	})
	var typedNil *mining.Materialized[int]

	cases := []struct {
		name string
		src  mining.Source[int]
		sup  float64
		opts []mining.Option
		err  error
	}{
		{"NilSource", nil, 0.5, nil, mining.ErrNilSource},
		{"TypedNilSource", typedNil, 0.5, nil, mining.ErrNilSource},
		{"NilFactoryFunc", mining.FromFactory[int](nil), 0.5, nil, mining.ErrNotIterable},
		{"FactoryReturnsNil", mining.FromFactory(func() iter.Seq[[]int] { return nil }), 0.5, nil, mining.ErrNotIterable},
		{"NegativeSupport", counting, -0.1, nil, mining.ErrBadMinSupport},
		{"SupportAboveOne", counting, 1.01, nil, mining.ErrBadMinSupport},
		{"NaNSupport", counting, math.NaN(), nil, mining.ErrBadMinSupport},
		{"InfSupport", counting, math.Inf(1), nil, mining.ErrBadMinSupport},
		{"NegativeMaxLength", counting, 0.5, []mining.Option{mining.WithMaxLength(-1)}, mining.ErrBadMaxLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			levels, n, err := mining.Mine(tc.src, tc.sup, tc.opts...)
			require.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, mining.ErrInvalidInput)
			assert.Nil(t, levels)
			assert.Zero(t, n)
		})
	}
	assert.Zero(t, calls, "validation must happen before the source is opened")
}

// failingSource yields a few rows and then an error on the given pass.
type failingSource struct {
	failOnPass int
	passes     int
}

var errDisk = errors.New("disk on fire")

func (f *failingSource) Open() (mining.Scan[int], error) {
	f.passes++
	pass := f.passes
	return func(yield func(itemset.Transaction[int], error) bool) {
		for _, row := range paperRows {
			if !yield(itemset.NewTransaction(row...), nil) {
				return
			}
		}
		if pass == f.failOnPass {
			yield(itemset.Transaction[int]{}, errDisk)
		}
	}, nil
}

// TestMine_SourceError aborts on a mid-scan failure at any level.
func TestMine_SourceError(t *testing.T) {
	for _, pass := range []int{1, 2, 3} {
		levels, n, err := mining.Mine[int](&failingSource{failOnPass: pass}, 0.4)
		require.ErrorIs(t, err, mining.ErrSource, "pass %d", pass)
		assert.ErrorIs(t, err, errDisk)
		assert.NotErrorIs(t, err, mining.ErrInvalidInput)
		assert.Nil(t, levels)
		assert.Zero(t, n)
	}
}

//----------------------------------------------------------------------------//
// Properties on random data
//----------------------------------------------------------------------------//

// TestMine_RowPruningDoesNotChangeResults compares both modes on random inputs.
func TestMine_RowPruningDoesNotChangeResults(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for round := 0; round < 30; round++ {
		rows := randomRows(r, 60, 10, 6)
		sup := []float64{0, 0.05, 0.1, 0.2, 0.35}[round%5]

		on, nOn, err := mining.Mine[int](mining.Materialize(rows), sup)
		require.NoError(t, err)
		off, nOff, err := mining.Mine[int](mining.Materialize(rows), sup, mining.WithRowPruning(false))
		require.NoError(t, err)

		require.Equal(t, nOn, nOff)
		assertSameCollections(t, off, on)
	}
}

// TestMine_InactiveRowsStaySkipped uses a source whose third row changes
// after level 2. A row masked at level 2 must not be counted at level 3.
func TestMine_InactiveRowsStaySkipped(t *testing.T) {
	newSource := func() mining.Source[int] {
		opens := 0
		return mining.FromFactory(func() iter.Seq[[]int] {
			opens++
			third := []int{1, 5}
			if opens >= 3 {
				third = []int{1, 2, 3}
			}
			return slices.Values([][]int{{1, 2, 3, 4}, {1, 2, 3, 4}, third, {2, 6}})
		})
	}

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	on, _, err := mining.Mine[int](newSource(), 0.5, mining.WithLogger(logger), mining.WithMaxLength(3))
	require.NoError(t, err)
	assert.Equal(t, 2, levelMap(t, on, 3)["(1, 2, 3)"], "row 3 was masked at level 2")

	inactive := map[any]any{}
	for _, e := range hook.AllEntries() {
		if e.Message == "level counted" && e.Data["level"] != 1 {
			inactive[e.Data["level"]] = e.Data["inactive_rows"]
		}
	}
	assert.Equal(t, map[any]any{2: uint64(2), 3: uint64(2)}, inactive)

	quiet, _ := logtest.NewNullLogger()
	off, _, err := mining.Mine[int](newSource(), 0.5, mining.WithLogger(quiet),
		mining.WithMaxLength(3), mining.WithRowPruning(false))
	require.NoError(t, err)
	assert.Equal(t, 3, levelMap(t, off, 3)["(1, 2, 3)"], "every row is rescanned")
}

// TestMine_MatchesBruteForce checks Mine against exhaustive subset counting.
func TestMine_MatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 1))
	for round := 0; round < 20; round++ {
		rows := randomRows(r, 40, 8, 5)
		sup := []float64{0, 0.1, 0.25, 0.5}[round%4]

		levels, n, err := mining.Mine[int](mining.Materialize(rows), sup)
		require.NoError(t, err)

		got := make(map[string]int)
		for _, l := range levels.Levels() {
			for is, c := range l.All() {
				got[is.String()] = c
			}
		}
		require.Equal(t, bruteForce(rows, n, sup), got, "round %d, support %v", round, sup)
	}
}

// TestMine_DownwardClosure verifies that every (k−1)-subset of a level-k itemset
// is in level k−1 with at least the same count.
func TestMine_DownwardClosure(t *testing.T) {
	rows := randomRows(rand.New(rand.NewPCG(4, 4)), 200, 6, 6)
	levels, _, err := mining.Mine[int](mining.Materialize(rows), 0.02)
	require.NoError(t, err)
	require.Greater(t, levels.Len(), 2, "fixture should reach level 3")

	for k, l := range levels.Levels() {
		if k == 1 {
			continue
		}
		for is, c := range l.All() {
			for i := range is {
				sub := is.Without(i)
				subCount, ok := levels.Count(sub)
				require.True(t, ok, "%v missing subset %v", is, sub)
				assert.GreaterOrEqual(t, subCount, c)
			}
		}
	}
}

//----------------------------------------------------------------------------//
// Logging
//----------------------------------------------------------------------------//

// TestMine_LogsPerLevel checks the structured records emitted at debug level.
func TestMine_LogsPerLevel(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, _, err := mining.Mine[int](mining.Materialize(paperRows), 0.4, mining.WithLogger(logger))
	require.NoError(t, err)

	var levels []any
	run := ""
	for _, e := range hook.AllEntries() {
		if e.Message == "level counted" {
			levels = append(levels, e.Data["level"])
		}
		id, ok := e.Data["run"].(string)
		require.True(t, ok, "every record carries the run id")
		if run == "" {
			run = id
		}
		assert.Equal(t, run, id)
	}
	assert.Equal(t, []any{1, 2, 3}, levels)
	assert.Equal(t, "mining finished", hook.LastEntry().Message)
	assert.Equal(t, 3, hook.LastEntry().Data["levels"])
}

//----------------------------------------------------------------------------//
// Helpers
//----------------------------------------------------------------------------//

func levelMap[T interface{ ~int | ~string }](t *testing.T, c *itemset.Collection[T], k int) map[string]int {
	t.Helper()
	l, ok := c.Level(k)
	require.True(t, ok, "level %d missing", k)
	out := make(map[string]int, l.Len())
	for is, count := range l.All() {
		out[is.String()] = count
	}

	return out
}

func assertSameCollections(t *testing.T, want, got *itemset.Collection[int]) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for k, wl := range want.Levels() {
		gl, ok := got.Level(k)
		require.True(t, ok)
		require.Equal(t, wl.Entries(), gl.Entries(), "level %d", k)
	}
}

func randomRows(r *rand.Rand, n, alphabet, maxLen int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		size := 1 + r.IntN(maxLen)
		for j := 0; j < size; j++ {
			rows[i] = append(rows[i], r.IntN(alphabet))
		}
	}

	return rows
}

// bruteForce counts every non-empty subset of every row.
func bruteForce(rows [][]int, n int, sup float64) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		items := itemset.New(row...)
		for mask := 1; mask < 1<<len(items); mask++ {
			var sub itemset.Itemset[int]
			for i, item := range items {
				if mask&(1<<i) != 0 {
					sub = append(sub, item)
				}
			}
			counts[sub.String()]++
		}
	}
	out := make(map[string]int)
	for key, c := range counts {
		if float64(c)/float64(n) >= sup {
			out[key] = c
		}
	}

	return out
}
