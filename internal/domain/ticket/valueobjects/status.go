package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusOnHold     TicketStatus = "on_hold"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusOnHold:     true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// Only consulted when strict transitions are enabled.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:       {StatusInProgress, StatusOnHold, StatusResolved, StatusClosed},
	StatusInProgress: {StatusOnHold, StatusResolved, StatusClosed},
	StatusOnHold:     {StatusInProgress, StatusClosed},
	StatusResolved:   {StatusClosed, StatusInProgress},
	StatusClosed:     {},
}

// AllStatuses lists statuses in lifecycle order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusInProgress, StatusOnHold, StatusResolved, StatusClosed}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if ts == next {
		return true
	}
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsFinished reports whether the ticket no longer needs work.
func (ts TicketStatus) IsFinished() bool {
	return ts == StatusResolved || ts == StatusClosed
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// ParseStatus accepts the canonical value and common spellings such as
// "In Progress" or "on-hold".
func ParseStatus(s string) (TicketStatus, error) {
	st := TicketStatus(normalizeToken(s))
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}

var tokenReplacer = strings.NewReplacer(" ", "_", "-", "_", "/", "_", "&", "and")

// normalizeToken folds case and maps separators to underscores.
func normalizeToken(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	folded = tokenReplacer.Replace(folded)
	for strings.Contains(folded, "__") {
		folded = strings.ReplaceAll(folded, "__", "_")
	}
	return strings.Trim(folded, "_")
}
