// Package domain defines the startup record, its value types, and the
// persistence contract shared by the record store and its backends.
package domain

import (
	"strings"
	"time"
)

// FundingStage identifies how far a startup has progressed through funding rounds.
type FundingStage string

// Funding stages accepted on a record, in display order.
const (
	StagePreSeed  FundingStage = "Pre-seed"
	StageSeed     FundingStage = "Seed"
	StageSeriesA  FundingStage = "Series A"
	StageSeriesB  FundingStage = "Series B"
	StageSeriesCP FundingStage = "Series C+"
)

// Status captures the operating state of a startup.
type Status string

// Canonical statuses.
const (
	StatusActive   Status = "Active"
	StatusAcquired Status = "Acquired"
	StatusClosed   Status = "Closed"
)

// DateLayout is the calendar date format used for FoundedDate.
const DateLayout = "2006-01-02"

// FundingStages returns the accepted funding stages in display order.
func FundingStages() []FundingStage {
	return []FundingStage{StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageSeriesCP}
}

// Statuses returns the accepted statuses in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusAcquired, StatusClosed}
}

// Valid reports whether the stage is one of FundingStages.
func (s FundingStage) Valid() bool {
	for _, candidate := range FundingStages() {
		if s == candidate {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of Statuses.
func (s Status) Valid() bool {
	for _, candidate := range Statuses() {
		if s == candidate {
			return true
		}
	}
	return false
}

// StartupFields holds every attribute of a record except its identifier.
// It is the input to the store's add operation.
type StartupFields struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Industry      string       `json:"industry"`
	FundingStage  FundingStage `json:"fundingStage"`
	FundingAmount float64      `json:"fundingAmount"`
	FoundedDate   string       `json:"foundedDate"`
	TeamSize      int          `json:"teamSize"`
	Status        Status       `json:"status"`
}

// Startup is a single catalog record. Records are immutable once created; the
// store assigns ID.
type Startup struct {
	ID string `json:"id"`
	StartupFields
}

// Fields returns the record without its identifier.
func (s Startup) Fields() StartupFields { return s.StartupFields }

// Founded parses FoundedDate. ok is false when the stored string is not a
// calendar date.
func (s StartupFields) Founded() (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s.FoundedDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Matches reports whether query is a case-insensitive substring of the
// record's name or industry. An empty query matches every record.
func (s Startup) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Industry), q)
}
