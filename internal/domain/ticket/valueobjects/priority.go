package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityWeights = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

var priorityResponseTimes = map[Priority]string{
	PriorityLow:      "48 hours",
	PriorityMedium:   "24 hours",
	PriorityHigh:     "4 hours",
	PriorityCritical: "1 hour",
}

var priorityAliases = map[string]Priority{
	"urgent":    PriorityCritical,
	"emergency": PriorityCritical,
	"normal":    PriorityMedium,
}

func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight orders priorities; higher is more urgent. Unknown values weigh 0.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

// ExpectedResponseTime is the human-readable target shown to customers.
func (p Priority) ExpectedResponseTime() string {
	if rt, ok := priorityResponseTimes[p]; ok {
		return rt
	}
	return priorityResponseTimes[PriorityMedium]
}

func (p Priority) IsCritical() bool {
	return p == PriorityCritical
}

// ParsePriority folds case and maps legacy names ("urgent") to canonical values.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	token := normalizeToken(s)
	if token == "" {
		return PriorityMedium, nil
	}
	p := Priority(token)
	if p.IsValid() {
		return p, nil
	}
	if alias, ok := priorityAliases[token]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}
