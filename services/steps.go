package services

import (
	"fmt"
	"strings"
	"time"

	"airbnb-cleaner/models"
)

// Step is one column-level transform of the cleaning pipeline. Apply must not
// modify its input.
type Step struct {
	Name string
	// Requires lists the columns Apply reads.
	Requires []string
	// Produces lists the columns Apply leaves behind. A step whose required
	// columns are gone but whose produced columns all exist has already run.
	Produces []string
	// Consumes lists raw export columns that a cleaned table no longer has.
	// When the run's input lacks all of them the step counts as already
	// applied, for steps whose own columns survive cleaning.
	Consumes []string
	Apply    func(*models.Table) (*models.Table, error)
}

// retype restores cell kinds lost when a cleaned table is read back from CSV:
// TRUE/FALSE become bools and numeric text becomes numbers.
func retype(t *models.Table, names []string) (*models.Table, error) {
	return mapColumns(t, names, func(v models.Value) models.Value {
		s, ok := v.Str()
		if !ok {
			return v
		}
		switch s {
		case "TRUE":
			return models.Bool(true)
		case "FALSE":
			return models.Bool(false)
		}
		if f, ok := parseNumber(v); ok {
			return models.Number(f)
		}
		return v
	})
}

// mapColumn rewrites one column cell by cell.
func mapColumn(t *models.Table, name string, fn func(models.Value) models.Value) (*models.Table, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	for i, v := range col {
		col[i] = fn(v)
	}
	return t.WithColumn(name, col)
}

func mapColumns(t *models.Table, names []string, fn func(models.Value) models.Value) (*models.Table, error) {
	var err error
	for _, name := range names {
		if t, err = mapColumn(t, name, fn); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func numberOrMissing(f float64, ok bool) models.Value {
	if !ok {
		return models.Missing()
	}
	return models.Number(f)
}

func temporalFilter(cutoff time.Time) Step {
	cutoffDay := dayNumber(cutoff)
	return Step{
		Name:     "temporal_filter",
		Requires: []string{colLastScraped},
		Produces: []string{colLastScraped},
		Apply: func(t *models.Table) (*models.Table, error) {
			col, err := t.Column(colLastScraped)
			if err != nil {
				return nil, err
			}
			return t.Filter(func(r int) bool {
				day, ok := parseDay(col[r])
				return ok && day >= cutoffDay
			}), nil
		},
	}
}

func pruneColumns(names []string) Step {
	return Step{
		Name: "prune_columns",
		Apply: func(t *models.Table) (*models.Table, error) {
			return t.Without(names...), nil
		},
	}
}

func datesToDays(names []string) Step {
	return Step{
		Name:     "dates_to_days",
		Requires: names,
		Produces: names,
		Apply: func(t *models.Table) (*models.Table, error) {
			return mapColumns(t, names, func(v models.Value) models.Value {
				return numberOrMissing(parseDay(v))
			})
		},
	}
}

// numbersToNumeric coerces whichever of names are present.
func numbersToNumeric(names []string) Step {
	return Step{
		Name: "numbers_to_numeric",
		Apply: func(t *models.Table) (*models.Table, error) {
			var present []string
			for _, n := range names {
				if t.Has(n) {
					present = append(present, n)
				}
			}
			return mapColumns(t, present, func(v models.Value) models.Value {
				return numberOrMissing(parseNumber(v))
			})
		},
	}
}

func percentagesToFractions(names []string) Step {
	return Step{
		Name:     "percentages_to_fractions",
		Requires: names,
		Produces: names,
		Apply: func(t *models.Table) (*models.Table, error) {
			return mapColumns(t, names, func(v models.Value) models.Value {
				return numberOrMissing(parseFraction(v))
			})
		},
	}
}

func flagsToCategories(names []string) Step {
	return Step{
		Name:     "flags_to_categories",
		Requires: names,
		Produces: names,
		Apply: func(t *models.Table) (*models.Table, error) {
			return mapColumns(t, names, func(v models.Value) models.Value {
				b, ok := parseFlag(v)
				if !ok {
					return models.Missing()
				}
				return models.Bool(b)
			})
		},
	}
}

func priceToNumber() Step {
	return Step{
		Name:     "price_to_number",
		Requires: []string{colPrice},
		Produces: []string{colPrice},
		Apply: func(t *models.Table) (*models.Table, error) {
			return mapColumn(t, colPrice, func(v models.Value) models.Value {
				return numberOrMissing(parsePrice(v))
			})
		},
	}
}

func decomposeVerifications(known []verification) Step {
	produces := make([]string, len(known))
	for i, k := range known {
		produces[i] = k.Column
	}
	return Step{
		Name:     "decompose_verifications",
		Requires: []string{colVerifications},
		Produces: produces,
		Apply: func(t *models.Table) (*models.Table, error) {
			src, err := t.Column(colVerifications)
			if err != nil {
				return nil, err
			}
			indicators := make([][]models.Value, len(known))
			for i := range indicators {
				indicators[i] = make([]models.Value, len(src))
			}
			for r, v := range src {
				have := make(map[string]struct{})
				if s, ok := v.Str(); ok {
					for _, tok := range splitList(s) {
						have[tok] = struct{}{}
					}
				}
				for i, k := range known {
					_, ok := have[k.Token]
					indicators[i][r] = models.Bool(ok)
				}
			}
			for i, k := range known {
				if t, err = t.WithColumn(k.Column, indicators[i]); err != nil {
					return nil, err
				}
			}
			return t.Without(colVerifications), nil
		},
	}
}

func normaliseCategory(c category) Step {
	lookup := make(map[string]string, len(c.Levels))
	for _, level := range c.Levels {
		lookup[normaliseKey(level)] = level
	}
	return Step{
		Name:     "normalise_" + c.Target,
		Requires: []string{c.Source},
		Produces: []string{c.Target},
		Apply: func(t *models.Table) (*models.Table, error) {
			col, err := t.Column(c.Source)
			if err != nil {
				return nil, err
			}
			for i, v := range col {
				s, ok := v.Str()
				level, known := lookup[normaliseKey(s)]
				if !ok || !known {
					col[i] = models.Missing()
					continue
				}
				col[i] = models.Text(level)
			}
			if c.Source != c.Target {
				t = t.Without(c.Source)
			}
			return t.WithColumn(c.Target, col)
		},
	}
}

func groupPropertyType(rs RuleSet) Step {
	return Step{
		Name:     "group_property_type",
		Requires: []string{colPropertyType},
		Produces: []string{colPropertyGrouped},
		Apply: func(t *models.Table) (*models.Table, error) {
			col, err := t.Column(colPropertyType)
			if err != nil {
				return nil, err
			}
			for i, v := range col {
				s, _ := v.Str()
				col[i] = models.Text(rs.Classify(s))
			}
			t, err = t.WithColumn(colPropertyGrouped, col)
			if err != nil {
				return nil, err
			}
			return t.Without(colPropertyType), nil
		},
	}
}

func reconcileBathrooms() Step {
	return Step{
		Name:     "reconcile_bathrooms",
		Requires: []string{colBathrooms, colBathroomsText},
		Produces: []string{colBathrooms, colBathroomsShared},
		Apply: func(t *models.Table) (*models.Table, error) {
			counts, err := t.Column(colBathrooms)
			if err != nil {
				return nil, err
			}
			texts, err := t.Column(colBathroomsText)
			if err != nil {
				return nil, err
			}
			shared := make([]models.Value, len(texts))
			for i := range counts {
				counts[i] = numberOrMissing(parseNumber(counts[i]))
				text, ok := texts[i].Str()
				if !ok {
					shared[i] = models.Missing()
					continue
				}
				shared[i] = models.Bool(strings.Contains(strings.ToLower(text), sharedToken))
				if counts[i].IsMissing() {
					counts[i] = numberOrMissing(parseBathroomText(text))
				}
			}
			if t, err = t.WithColumn(colBathrooms, counts); err != nil {
				return nil, err
			}
			if t, err = t.WithColumn(colBathroomsShared, shared); err != nil {
				return nil, err
			}
			return t.Without(colBathroomsText), nil
		},
	}
}

func scoreAmenities(groups []amenityGroup) Step {
	produces := make([]string, len(groups))
	for i, g := range groups {
		produces[i] = g.Column
	}
	return Step{
		Name:     "score_amenities",
		Requires: []string{colAmenities},
		Produces: produces,
		Apply: func(t *models.Table) (*models.Table, error) {
			src, err := t.Column(colAmenities)
			if err != nil {
				return nil, err
			}
			for _, g := range groups {
				scores := make([]models.Value, len(src))
				for r, v := range src {
					s, _ := v.Str()
					scores[r] = models.Number(float64(countKeywords(strings.ToLower(s), g.Keywords)))
				}
				if t, err = t.WithColumn(g.Column, scores); err != nil {
					return nil, err
				}
			}
			return t.Without(colAmenities), nil
		},
	}
}

// countKeywords counts the keywords that occur in text as substrings.
func countKeywords(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

func encodeResponseTime() Step {
	return Step{
		Name:     "encode_response_time",
		Requires: []string{colHostResponseTime},
		Produces: []string{colHostResponseTime},
		Apply: func(t *models.Table) (*models.Table, error) {
			return mapColumn(t, colHostResponseTime, func(v models.Value) models.Value {
				if f, ok := parseNumber(v); ok {
					if f == 1 || f == 2 || f == 3 || f == 4 {
						return models.Number(f)
					}
					return models.Missing()
				}
				s, _ := v.Str()
				rank, ok := responseTimes[normaliseKey(s)]
				return numberOrMissing(rank, ok)
			})
		},
	}
}

const outlierStepName = "filter_price_outliers"

// filterPriceOutliers drops rows whose price is missing or outside the fence.
// The fence is computed from the incoming rows unless pinned; the fence used
// is stored in *used. A computed fence is fitted once: input that was already
// cleaned is left alone, since refitting on trimmed prices narrows the fence
// every run. A pinned fence is reapplied.
func filterPriceOutliers(pinned *models.Fence, used *models.Fence) Step {
	var consumes []string
	if pinned == nil {
		consumes = []string{colAmenities, colVerifications}
	}
	return Step{
		Name:     outlierStepName,
		Requires: []string{colPrice},
		Produces: []string{colPrice},
		Consumes: consumes,
		Apply: func(t *models.Table) (*models.Table, error) {
			col, err := t.Column(colPrice)
			if err != nil {
				return nil, err
			}
			prices := make([]float64, len(col))
			present := make([]float64, 0, len(col))
			for i, v := range col {
				if v.IsMissing() {
					continue
				}
				f, ok := v.Float()
				if !ok || v.Kind() != models.KindNumber {
					return nil, fmt.Errorf("price row %d is %s, not a number", i, v.Kind())
				}
				prices[i] = f
				present = append(present, f)
			}
			var fence models.Fence
			if pinned != nil {
				fence = *pinned
			} else {
				fence = TukeyFence(present)
			}
			if used != nil {
				*used = fence
			}
			return t.Filter(func(r int) bool {
				return !col[r].IsMissing() && fence.Contains(prices[r])
			}), nil
		},
	}
}
