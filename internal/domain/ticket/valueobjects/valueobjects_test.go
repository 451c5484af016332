package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"technical_issue", CategoryTechnicalIssue, true},
		{"technical-issue", CategoryTechnicalIssue, true},
		{"Technical Support", CategoryTechnicalIssue, true},
		{"technical", CategoryTechnicalIssue, true},
		{"  TECHNICAL ISSUE ", CategoryTechnicalIssue, true},
		{"Virus & Malware", CategoryVirusRemoval, true},
		{"Network", CategoryNetworkConnectivity, true},
		{"General Inquiry", CategoryOther, true},
		{"eCitizen", CategoryGovernmentServices, true},
		{"quantum computing", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCategoriesAreCanonical(t *testing.T) {
	assert.Len(t, AllCategories(), 20)
	for _, c := range AllCategories() {
		got, ok := NormalizeCategory(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	for alias, c := range legacyCategories {
		assert.True(t, c.IsValid(), "alias %s maps to non-canonical %s", alias, c)
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Technical Issue", CategoryTechnicalIssue.Label())
	assert.Equal(t, "Other", CategoryOther.Label())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = ParsePriority("Urgent")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)

	p, err = ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("whenever")
	assert.Error(t, err)
}

func TestPriorityWeightAndResponseTime(t *testing.T) {
	assert.Greater(t, PriorityCritical.Weight(), PriorityHigh.Weight())
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
	assert.Equal(t, "1 hour", PriorityCritical.ExpectedResponseTime())
	assert.Equal(t, "24 hours", Priority("bogus").ExpectedResponseTime())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("In Progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	st, err = ParseStatus("on-hold")
	require.NoError(t, err)
	assert.Equal(t, StatusOnHold, st)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to TicketStatus
		allowed  bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},
		{StatusResolved, StatusClosed, true},
		{StatusOnHold, StatusInProgress, true},
		{StatusInProgress, StatusOnHold, true},
		{StatusOnHold, StatusResolved, false},
		{StatusClosed, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusClosed, StatusClosed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
