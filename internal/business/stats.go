package business

import (
	"fmt"
	"math"
	"time"
)

// StatsWindow is the period compared by the stats overview.
const StatsWindow = 30 * 24 * time.Hour

// Overview computes the stats cards shown above the business listing.
// Each card compares the last StatsWindow before now with the window
// before it.
func Overview(all []*Business, now time.Time) []StatsData {
	cur := now.Add(-StatsWindow)
	prev := cur.Add(-StatsWindow)

	var (
		total               float64
		issued, sold        int
		curCount, prevCount int
		curValue, prevValue float64
		curSold, prevSold   int
	)
	for _, b := range all {
		total += b.Value
		if b.Status == StatusSold {
			sold++
		} else {
			issued++
		}

		switch {
		case !b.Date.Before(cur) && !b.Date.After(now):
			curCount++
			curValue += b.Value
			if b.Status == StatusSold {
				curSold++
			}
		case !b.Date.Before(prev) && b.Date.Before(cur):
			prevCount++
			prevValue += b.Value
			if b.Status == StatusSold {
				prevSold++
			}
		}
	}

	return []StatsData{
		card("Total negocios", FormatCount(len(all)), float64(curCount), float64(prevCount), "vs. 30 días anteriores"),
		card("Valor total", FormatCOP(total), curValue, prevValue, "vs. 30 días anteriores"),
		card("Emitidos", FormatCount(issued), float64(curCount-curSold), float64(prevCount-prevSold), "pendientes de venta"),
		card("Ventas efectuadas", FormatCount(sold), float64(curSold), float64(prevSold), "cerradas en el periodo"),
	}
}

func card(title, value string, cur, prev float64, desc string) StatsData {
	change := percentChange(cur, prev)
	trend := TrendNeutral
	switch {
	case change > 0:
		trend = TrendUp
	case change < 0:
		trend = TrendDown
	}
	return StatsData{
		Title:       title,
		Value:       value,
		Change:      change,
		Trend:       trend,
		Description: desc,
	}
}

// percentChange is rounded to one decimal. Growth from zero counts as 100%.
func percentChange(cur, prev float64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return math.Round((cur-prev)/prev*1000) / 10
}

// ChangeLabel formats a change as "+12.5%" / "-3%" / "0%".
func (s StatsData) ChangeLabel() string {
	if s.Change > 0 {
		return fmt.Sprintf("+%g%%", s.Change)
	}
	return fmt.Sprintf("%g%%", s.Change)
}
