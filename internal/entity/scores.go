package entity

// Quarters - the four game quarters scores are tracked for.
const Quarters = 4

// Scores - the external score record, one optional pair per quarter. A nil
// entry means the quarter has not been scored yet. Rows carry the home team's
// last score digit, columns the away team's.
type Scores struct {
	Home [Quarters]*int `json:"home"`
	Away [Quarters]*int `json:"away"`
}

// QuarterDigits - the last digit of each team's score for quarter q (1-based).
// Returns false while either score for the quarter is missing.
func (that *Scores) QuarterDigits(quarter int) (int, int, bool) {
	if quarter < 1 || quarter > Quarters {
		return 0, 0, false
	}

	home, away := that.Home[quarter-1], that.Away[quarter-1]
	if home == nil || away == nil {
		return 0, 0, false
	}

	return *home % GridSize, *away % GridSize, true
}
