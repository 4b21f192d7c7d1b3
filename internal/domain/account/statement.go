package domain_account

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type KindFilter int

const (
	KindAll KindFilter = iota
	KindCredits
	KindDebits
)

type PeriodFilter int

const (
	PeriodAlways PeriodFilter = iota
	PeriodLastWeek
	PeriodLastMonth
)

const (
	lastWeekWindow  = 7 * 24 * time.Hour
	lastMonthWindow = 30 * 24 * time.Hour
)

type StatementFilter struct {
	Kind   KindFilter
	Period PeriodFilter
}

type WeekGroup struct {
	WeekStart time.Time
	Title     string
	Movements []Movement
}

type Statement struct {
	AccountNumber string
	Movements     []Movement
	Weeks         []WeekGroup
	Credits       decimal.Decimal
	Debits        decimal.Decimal
}

// FilterMovements applies kind and period filters relative to now. Period
// cutoffs are inclusive.
func FilterMovements(movements []Movement, f StatementFilter, now time.Time) []Movement {
	var cutoff time.Time
	switch f.Period {
	case PeriodLastWeek:
		cutoff = now.Add(-lastWeekWindow)
	case PeriodLastMonth:
		cutoff = now.Add(-lastMonthWindow)
	}

	out := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if f.Kind == KindCredits && m.Kind != MovementCredit {
			continue
		}
		if f.Kind == KindDebits && m.Kind != MovementDebit {
			continue
		}
		if !cutoff.IsZero() && m.At.Before(cutoff) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GroupByWeek buckets movements into Monday-to-Sunday weeks in loc, newest
// week first. Movements keep their input order inside a week.
func GroupByWeek(movements []Movement, loc *time.Location) []WeekGroup {
	if loc == nil {
		loc = time.UTC
	}

	byWeek := make(map[time.Time]*WeekGroup)
	for _, m := range movements {
		start := weekStart(m.At.In(loc))
		g, ok := byWeek[start]
		if !ok {
			end := start.AddDate(0, 0, 6)
			g = &WeekGroup{
				WeekStart: start,
				Title:     start.Format("Mon 2 Jan") + " - " + end.Format("Mon 2 Jan"),
			}
			byWeek[start] = g
		}
		g.Movements = append(g.Movements, m)
	}

	out := make([]WeekGroup, 0, len(byWeek))
	for _, g := range byWeek {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStart.After(out[j].WeekStart)
	})
	return out
}

func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func NewStatement(number string, movements []Movement, f StatementFilter, now time.Time, loc *time.Location) Statement {
	filtered := FilterMovements(movements, f, now)

	credits, debits := decimal.Zero, decimal.Zero
	for _, m := range filtered {
		if m.IsCredit() {
			credits = credits.Add(m.Amount)
		} else {
			debits = debits.Add(m.Amount)
		}
	}

	return Statement{
		AccountNumber: number,
		Movements:     filtered,
		Weeks:         GroupByWeek(filtered, loc),
		Credits:       credits,
		Debits:        debits,
	}
}
