// Package business holds the dashboard's domain records (business deals
// and users), the column registries that display them, the business
// search form and the stats overview.
package business

import "time"

// Status is the lifecycle state of a business deal.
type Status string

const (
	StatusIssued Status = "Emitido"
	StatusSold   Status = "Venta Efectuado"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusIssued || s == StatusSold
}

// Agent is the user who owns a business deal.
type Agent struct {
	Name   string
	Avatar string
}

// String returns the agent's display name. Search, sort and export of
// the nested user column all go through it.
func (a Agent) String() string {
	return a.Name
}

// Initials returns the first letter of each word of the name.
func (a Agent) Initials() string {
	var out []rune
	inWord := false
	for _, r := range a.Name {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			out = append(out, r)
			inWord = true
		}
	}
	return string(out)
}

// Business is one row of the business listing.
type Business struct {
	ID             string
	Identification string // National ID (cédula) of the client
	User           Agent
	Email          string
	TermPeriod     string
	Date           time.Time
	Value          float64
	Product        string
	Status         Status
}

// User is one row of the user listing.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	Role      string
	LastLogin time.Time
}

// Trend is the direction of a stats card's change.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// StatsData is one card of the stats overview.
type StatsData struct {
	Title       string
	Value       string
	Change      float64 // Percent change against the previous period
	Trend       Trend
	Description string
}
