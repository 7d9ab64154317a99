package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// Summarizer computes and prints statistics over a cleaning run.
type Summarizer struct {
	logger *utils.Logger
}

func NewSummarizer(logger *utils.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

func (s *Summarizer) Generate(res *Result) *models.Summary {
	sum := &models.Summary{
		RowsIn:        res.RowsIn,
		Steps:         res.Steps,
		Fence:         res.Fence,
		FenceApplied:  res.FenceApplied(),
		ByBorough:     make(map[string]int),
		ByRoomType:    make(map[string]int),
		ByPropertyGrp: make(map[string]int),
	}
	if res.Table == nil {
		return sum
	}
	t := res.Table
	sum.RowsOut = t.Len()

	if col, err := t.Column(colPrice); err == nil {
		prices := make([]float64, 0, len(col))
		for _, v := range col {
			if f, ok := v.Float(); ok {
				prices = append(prices, f)
			}
		}
		if len(prices) > 0 {
			sum.AveragePrice = round2(stat.Mean(prices, nil))
			sum.MinPrice = round2(floats.Min(prices))
			sum.MaxPrice = round2(floats.Max(prices))
		}
		if len(prices) > 1 {
			sum.StdDevPrice = round2(stat.StdDev(prices, nil))
		}
	}

	seed(sum.ByBorough, Boroughs)
	seed(sum.ByRoomType, RoomTypes)
	seed(sum.ByPropertyGrp, PropertyGroups.Labels())
	countInto(t, colBorough, sum.ByBorough)
	countInto(t, colRoomType, sum.ByRoomType)
	countInto(t, colPropertyGrouped, sum.ByPropertyGrp)

	s.logger.Info("[summary] %d listings kept of %d, mean price %.2f", sum.RowsOut, sum.RowsIn, sum.AveragePrice)
	return sum
}

// seed lists every level of a closed vocabulary, so empty ones print as 0.
func seed(counts map[string]int, levels []string) {
	for _, l := range levels {
		counts[l] = 0
	}
}

func countInto(t *models.Table, name string, into map[string]int) {
	col, err := t.Column(name)
	if err != nil {
		return
	}
	for _, v := range col {
		if !v.IsMissing() {
			into[v.String()]++
		}
	}
}

func (s *Summarizer) Print(w io.Writer, sum *models.Summary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n  LISTINGS CLEANING SUMMARY\n%s\n\n", sep, sep)

	fmt.Fprintf(w, "  Rows\n  %s\n", thin)
	fmt.Fprintf(w, "  Raw rows     : %d\n", sum.RowsIn)
	fmt.Fprintf(w, "  Cleaned rows : %d\n", sum.RowsOut)
	for _, st := range sum.Steps {
		if st.Dropped() > 0 {
			fmt.Fprintf(w, "  %-28s -%d\n", st.Name, st.Dropped())
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Price (per night)\n  %s\n", thin)
	if sum.RowsOut > 0 {
		if sum.FenceApplied {
			fmt.Fprintf(w, "  Fence   : [%.2f, %.2f]\n", sum.Fence.Lower, sum.Fence.Upper)
		} else {
			fmt.Fprintf(w, "  Fence   : not refitted, input already cleaned\n")
		}
		fmt.Fprintf(w, "  Mean    : %.2f (sd %.2f)\n", sum.AveragePrice, sum.StdDevPrice)
		fmt.Fprintf(w, "  Min/Max : %.2f / %.2f\n", sum.MinPrice, sum.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	printCounts(w, "Listings by Borough", thin, sum.ByBorough)
	printCounts(w, "Listings by Room Type", thin, sum.ByRoomType)
	printCounts(w, "Listings by Property Group", thin, sum.ByPropertyGrp)

	fmt.Fprintf(w, "%s\n\n", sep)
}

func printCounts(w io.Writer, title, thin string, counts map[string]int) {
	fmt.Fprintf(w, "  %s\n  %s\n", title, thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}
	type labelCount struct {
		label string
		count int
	}
	var rows []labelCount
	for l, c := range counts {
		rows = append(rows, labelCount{l, c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})
	for _, r := range rows {
		fmt.Fprintf(w, "  %-30s %d\n", truncate(r.label, 28), r.count)
	}
	fmt.Fprintln(w)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
