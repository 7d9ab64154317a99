package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// minPairs is the fewest complete observations a predictor needs to be ranked.
const minPairs = 3

// Roles names the target column and the candidate predictors.
type Roles struct {
	Target     string
	Predictors []string
}

// DefaultRoles targets price and offers every numeric or bool column as a predictor.
func DefaultRoles(t *models.Table) Roles {
	roles := Roles{Target: colPrice}
	for _, name := range t.Columns() {
		if name == colPrice {
			continue
		}
		kind, err := t.ColumnKind(name)
		if err != nil {
			continue
		}
		if kind == models.KindNumber || kind == models.KindBool {
			roles.Predictors = append(roles.Predictors, name)
		}
	}
	return roles
}

// Ranker orders predictors by the strength of their linear relationship to the target.
type Ranker struct {
	logger *utils.Logger
}

func NewRanker(logger *utils.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank returns up to top predictors ordered by |Pearson r| against the
// target, computed over rows where both cells are present. top <= 0 returns all.
func (r *Ranker) Rank(t *models.Table, roles Roles, top int) ([]models.Correlation, error) {
	target, err := t.Column(roles.Target)
	if err != nil {
		return nil, err
	}

	var out []models.Correlation
	for _, name := range roles.Predictors {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		var xs, ys []float64
		for i := range col {
			x, okX := col[i].Float()
			y, okY := target[i].Float()
			if okX && okY {
				xs = append(xs, x)
				ys = append(ys, y)
			}
		}
		if len(xs) < minPairs {
			r.logger.Debug("[ranker] %s has %d paired rows, skipping", name, len(xs))
			continue
		}
		c := stat.Correlation(xs, ys, nil)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			r.logger.Debug("[ranker] %s has no variance, skipping", name)
			continue
		}
		out = append(out, models.Correlation{Column: name, Coefficient: c, Observations: len(xs)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Coefficient) > math.Abs(out[j].Coefficient)
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out, nil
}

// RankingTable lays ranked correlations out as rank, column, r, n rows.
func RankingTable(ranked []models.Correlation) (*models.Table, error) {
	cols := make([][]models.Value, 4)
	for i := range cols {
		cols[i] = make([]models.Value, len(ranked))
	}
	for i, c := range ranked {
		cols[0][i] = models.Number(float64(i + 1))
		cols[1][i] = models.Text(c.Column)
		cols[2][i] = models.Number(c.Coefficient)
		cols[3][i] = models.Number(float64(c.Observations))
	}
	return models.NewTable([]string{"rank", "column", "coefficient", "observations"}, cols)
}
