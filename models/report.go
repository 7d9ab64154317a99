package models

// Fence is the Tukey outlier bound [Lower, Upper] on price.
type Fence struct {
	Q1    float64
	Q3    float64
	Lower float64
	Upper float64
}

// Contains reports whether x lies inside the closed fence.
func (f Fence) Contains(x float64) bool {
	return x >= f.Lower && x <= f.Upper
}

// StepStat records what a cleaning step did to the table.
type StepStat struct {
	Name       string
	RowsBefore int
	RowsAfter  int
	Skipped    bool
}

// Dropped returns the number of rows the step removed.
func (s StepStat) Dropped() int { return s.RowsBefore - s.RowsAfter }

// Summary holds the computed statistics over a cleaned table.
type Summary struct {
	RowsIn        int
	RowsOut       int
	Steps         []StepStat
	Fence         Fence
	FenceApplied  bool
	AveragePrice  float64
	StdDevPrice   float64
	MinPrice      float64
	MaxPrice      float64
	ByBorough     map[string]int
	ByRoomType    map[string]int
	ByPropertyGrp map[string]int
}

// Correlation is one ranked predictor.
type Correlation struct {
	Column       string
	Coefficient  float64
	Observations int
}
