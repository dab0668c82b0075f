package report

// MetricSet holds the four rank pairs of one axis in sheet order. Rates are
// kept as parsed from the source, never re-derived.
type MetricSet struct {
	GoodCount   int     `json:"goodCount"`
	GoodRate    float64 `json:"goodRate"`
	FairCount   int     `json:"fairCount"`
	FairRate    float64 `json:"fairRate"`
	PassedCount int     `json:"passedCount"`
	PassedRate  float64 `json:"passedRate"`
	FailedCount int     `json:"failedCount"`
	FailedRate  float64 `json:"failedRate"`
}

// Count returns the count field for rank.
func (m MetricSet) Count(rank Rank) int {
	switch rank {
	case RankGood:
		return m.GoodCount
	case RankFair:
		return m.FairCount
	case RankPassed:
		return m.PassedCount
	case RankFailed:
		return m.FailedCount
	}
	return 0
}

// Rate returns the rate field for rank.
func (m MetricSet) Rate(rank Rank) float64 {
	switch rank {
	case RankGood:
		return m.GoodRate
	case RankFair:
		return m.FairRate
	case RankPassed:
		return m.PassedRate
	case RankFailed:
		return m.FailedRate
	}
	return 0
}
