package domain

import "strconv"

// Statistic counts answered questions over some selection.
type Statistic struct {
	Correct int64 `json:"correct"`
	Total   int64 `json:"total"`
}

// Add returns the element-wise sum of s and o.
func (s Statistic) Add(o Statistic) Statistic {
	return Statistic{
		Correct: s.Correct + o.Correct,
		Total:   s.Total + o.Total,
	}
}

// Record counts one more answer.
func (s Statistic) Record(correct bool) Statistic {
	s.Total++
	if correct {
		s.Correct++
	}
	return s
}

// Accuracy returns the percentage of correct answers, 0 when nothing was answered.
func (s Statistic) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Correct) / float64(s.Total)
}

// DailyStatistic is the statistic of one local calendar day.
type DailyStatistic struct {
	Date Date `json:"date"`
	Statistic
}

// RollingStatistics holds per-day statistics for consecutive days, oldest
// first, and their sum.
type RollingStatistics struct {
	Scores  []DailyStatistic `json:"scores"`
	Overall Statistic        `json:"overall"`
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
