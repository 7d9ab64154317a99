package services

import (
	"errors"
	"fmt"
	"time"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// ErrNoRows is returned when cleaning leaves nothing to model.
var ErrNoRows = errors.New("no rows left after cleaning")

// Options configures a Cleaner.
type Options struct {
	// Cutoff is the earliest scrape date kept.
	Cutoff time.Time
	// PinnedFence, when set, replaces the fence computed from the data.
	PinnedFence *models.Fence
}

// Result is the outcome of one cleaning run.
type Result struct {
	Table  *models.Table
	Fence  models.Fence
	Steps  []models.StepStat
	RowsIn int
}

// FenceApplied reports whether the price outlier step ran rather than being
// skipped as already applied.
func (r *Result) FenceApplied() bool {
	for _, st := range r.Steps {
		if st.Name == outlierStepName {
			return !st.Skipped
		}
	}
	return false
}

// Cleaner transforms a raw listings table into a modelling-ready one.
type Cleaner struct {
	logger *utils.Logger
	opts   Options
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger, opts Options) *Cleaner {
	return &Cleaner{logger: logger, opts: opts}
}

// steps returns the pipeline in execution order. fence receives the price
// fence used by the last step.
func (c *Cleaner) steps(fence *models.Fence) []Step {
	steps := []Step{
		temporalFilter(c.opts.Cutoff),
		pruneColumns(prunedColumns),
		datesToDays(dateColumns),
		numbersToNumeric(numericColumns),
		percentagesToFractions(percentageColumns),
		flagsToCategories(flagColumns),
		priceToNumber(),
		decomposeVerifications(verifications),
	}
	for _, cat := range categories {
		steps = append(steps, normaliseCategory(cat))
	}
	return append(steps,
		groupPropertyType(PropertyGroups),
		reconcileBathrooms(),
		scoreAmenities(amenityGroups),
		encodeResponseTime(),
		filterPriceOutliers(c.opts.PinnedFence, fence),
	)
}

// Clean runs every step over raw and returns the cleaned table. raw is not
// modified.
func (c *Cleaner) Clean(raw *models.Table) (*Result, error) {
	res := &Result{RowsIn: raw.Len()}
	t := raw

	for _, step := range c.steps(&res.Fence) {
		stat := models.StepStat{Name: step.Name, RowsBefore: t.Len()}

		missing := missingColumns(t, step.Requires)
		if len(missing) > 0 && (len(step.Produces) == 0 || len(missingColumns(t, step.Produces)) > 0) {
			return nil, fmt.Errorf("cleaner: step %s: %w: %s", step.Name, models.ErrColumnNotFound, missing[0])
		}
		consumed := len(step.Consumes) > 0 && len(missingColumns(raw, step.Consumes)) == len(step.Consumes)
		if len(missing) > 0 || consumed {
			c.logger.Debug("[cleaner] %s already applied, skipping", step.Name)
			next, err := retype(t, step.Produces)
			if err != nil {
				return nil, fmt.Errorf("cleaner: step %s: %w", step.Name, err)
			}
			t = next
			stat.Skipped = true
			stat.RowsAfter = t.Len()
			res.Steps = append(res.Steps, stat)
			continue
		}

		next, err := step.Apply(t)
		if err != nil {
			return nil, fmt.Errorf("cleaner: step %s: %w", step.Name, err)
		}
		t = next
		stat.RowsAfter = t.Len()
		res.Steps = append(res.Steps, stat)

		if stat.Dropped() > 0 {
			c.logger.Info("[cleaner] %s dropped %d rows (%d left)", step.Name, stat.Dropped(), t.Len())
		} else {
			c.logger.Debug("[cleaner] %s done", step.Name)
		}
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)", res.RowsIn, t.Len(), res.RowsIn-t.Len())
	if res.FenceApplied() {
		c.logger.Info("[cleaner] Price fence [%.2f, %.2f]", res.Fence.Lower, res.Fence.Upper)
	}

	res.Table = t
	if t.Len() == 0 {
		return res, ErrNoRows
	}
	return res, nil
}

func missingColumns(t *models.Table, names []string) []string {
	var out []string
	for _, n := range names {
		if !t.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
