package analytics

import (
	"time"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodLabel renders the bucket key of t for the granularity.
func PeriodLabel(t time.Time, granularity types.Granularity) string {
	if granularity == types.GranularityMonthly {
		return t.UTC().Format(monthLayout)
	}
	return t.UTC().Format(dayLayout)
}

func periodStart(t time.Time, granularity types.Granularity) time.Time {
	if granularity == types.GranularityMonthly {
		return MonthStart(t)
	}
	return DayStart(t)
}

func nextPeriod(t time.Time, granularity types.Granularity) time.Time {
	if granularity == types.GranularityMonthly {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

func daysBetween(from, to time.Time) int {
	return int(DayStart(to).Sub(DayStart(from)).Hours() / 24)
}
