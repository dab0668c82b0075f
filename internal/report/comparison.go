package report

// ComparisonMetrics is the single-rank delta block. Diff fields are exact
// differences new - old; no rounding happens at this level.
type ComparisonMetrics struct {
	OldCount  int     `json:"oldCount"`
	NewCount  int     `json:"newCount"`
	DiffCount int     `json:"diffCount"`
	OldRate   float64 `json:"oldRate"`
	NewRate   float64 `json:"newRate"`
	DiffRate  float64 `json:"diffRate"`
}

// ComparisonRow compares one unit for a single selected rank.
type ComparisonRow struct {
	Label            string            `json:"label"`
	Grade            *string           `json:"grade"`
	Level            Level             `json:"level"`
	TotalStudentsOld int               `json:"totalStudentsOld"`
	TotalStudentsNew int               `json:"totalStudentsNew"`
	Metrics          ComparisonMetrics `json:"metrics"`
}

// RankDiff is the per-rank tuple of a FullComparisonRow.
type RankDiff struct {
	OldCount int     `json:"oldCount"`
	NewCount int     `json:"newCount"`
	OldRate  float64 `json:"oldRate"`
	NewRate  float64 `json:"newRate"`
}

// DiffCount returns NewCount - OldCount.
func (d RankDiff) DiffCount() int { return d.NewCount - d.OldCount }

// DiffRate returns NewRate - OldRate.
func (d RankDiff) DiffRate() float64 { return d.NewRate - d.OldRate }

// FullComparisonRow compares one SCHOOL or GRADE unit across all four ranks.
type FullComparisonRow struct {
	Label    string            `json:"label"`
	Level    Level             `json:"level"`
	TotalOld int               `json:"totalOld"`
	TotalNew int               `json:"totalNew"`
	Results  map[Rank]RankDiff `json:"results"`
}

// Result returns the tuple for rank (zero when absent).
func (f FullComparisonRow) Result(rank Rank) RankDiff {
	return f.Results[rank]
}
