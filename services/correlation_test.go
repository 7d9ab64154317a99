package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
)

func numbers(xs ...float64) []models.Value {
	out := make([]models.Value, len(xs))
	for i, x := range xs {
		out[i] = models.Number(x)
	}
	return out
}

func rankingTable(t *testing.T) *models.Table {
	t.Helper()
	tbl, err := models.NewTable(
		[]string{"price", "bedrooms", "noise", "inverse", "constant", "flag", "label"},
		[][]models.Value{
			numbers(100, 200, 300, 400, 500),
			numbers(1, 2, 3, 4, 5),
			numbers(3, 1, 4, 1, 5),
			numbers(10, 8, 6, 4, 3),
			numbers(7, 7, 7, 7, 7),
			{models.Bool(false), models.Bool(false), models.Bool(true), models.Bool(true), models.Bool(true)},
			{models.Text("a"), models.Text("b"), models.Text("c"), models.Text("d"), models.Text("e")},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestDefaultRoles(t *testing.T) {
	roles := DefaultRoles(rankingTable(t))
	assert.Equal(t, "price", roles.Target)
	assert.Equal(t, []string{"bedrooms", "noise", "inverse", "constant", "flag"}, roles.Predictors)
}

func TestRankOrdersByAbsoluteCorrelation(t *testing.T) {
	tbl := rankingTable(t)
	ranked, err := NewRanker(newTestLogger()).Rank(tbl, DefaultRoles(tbl), 0)
	require.NoError(t, err)

	require.Len(t, ranked, 4)
	assert.Equal(t, "bedrooms", ranked[0].Column)
	assert.InDelta(t, 1.0, ranked[0].Coefficient, 1e-9)
	assert.Equal(t, "inverse", ranked[1].Column)
	assert.InDelta(t, -0.994, ranked[1].Coefficient, 0.001)
	assert.Equal(t, "flag", ranked[2].Column)
	assert.Equal(t, "noise", ranked[3].Column)
	assert.Equal(t, 5, ranked[3].Observations)
}

func TestRankTop(t *testing.T) {
	tbl := rankingTable(t)
	ranked, err := NewRanker(newTestLogger()).Rank(tbl, DefaultRoles(tbl), 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "bedrooms", ranked[0].Column)
}

func TestRankPairwiseComplete(t *testing.T) {
	tbl, err := models.NewTable(
		[]string{"price", "beds"},
		[][]models.Value{
			{models.Number(1), models.Number(2), models.Missing(), models.Number(4), models.Number(5)},
			{models.Number(1), models.Missing(), models.Number(3), models.Number(4), models.Number(5)},
		},
	)
	require.NoError(t, err)
	ranked, err := NewRanker(newTestLogger()).Rank(tbl, Roles{Target: "price", Predictors: []string{"beds"}}, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 3, ranked[0].Observations)
}

func TestRankTooFewPairs(t *testing.T) {
	tbl, err := models.NewTable(
		[]string{"price", "beds"},
		[][]models.Value{numbers(1, 2), numbers(2, 4)},
	)
	require.NoError(t, err)
	ranked, err := NewRanker(newTestLogger()).Rank(tbl, Roles{Target: "price", Predictors: []string{"beds"}}, 0)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankMissingColumn(t *testing.T) {
	tbl := rankingTable(t)
	_, err := NewRanker(newTestLogger()).Rank(tbl, Roles{Target: "rent"}, 0)
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
	_, err = NewRanker(newTestLogger()).Rank(tbl, Roles{Target: "price", Predictors: []string{"nope"}}, 0)
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestRankingTable(t *testing.T) {
	tbl, err := RankingTable([]models.Correlation{
		{Column: "bedrooms", Coefficient: 0.5, Observations: 40},
		{Column: "amenities_tv", Coefficient: -0.25, Observations: 38},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rank", "column", "coefficient", "observations"}, tbl.Columns())
	assert.Equal(t, [][]string{
		{"1", "bedrooms", "0.5", "40"},
		{"2", "amenities_tv", "-0.25", "38"},
	}, tbl.Records())

	empty, err := RankingTable(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}
