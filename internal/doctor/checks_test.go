package doctor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
	fixErr   error
	fixCalls int
}

func (m *mockCheck) Name() string                      { return m.name }
func (m *mockCheck) Category() string                  { return m.category }
func (m *mockCheck) Run(_ context.Context) CheckResult { return m.result }
func (m *mockCheck) Fix() error {
	m.fixCalls++
	return m.fixErr
}

func mockChecks() []Check {
	return []Check{
		&mockCheck{name: "check1", category: CategoryConfig, result: CheckResult{Name: "check1", Status: StatusPass}},
		&mockCheck{name: "check2", category: CategorySSH, result: CheckResult{Name: "check2", Status: StatusWarn}},
		&mockCheck{name: "check3", category: CategoryConfig, result: CheckResult{Name: "check3", Status: StatusFail}},
	}
}

func TestRunAll(t *testing.T) {
	results := RunAll(context.Background(), mockChecks())

	require.Len(t, results, 3)
	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, StatusWarn, results[1].Status)
	assert.Equal(t, StatusFail, results[2].Status)
}

// overlapCheck records the checks running at the same time as it.
type overlapCheck struct {
	name    string
	running *int
	peak    *int
}

func (c *overlapCheck) Name() string     { return c.name }
func (c *overlapCheck) Category() string { return CategoryAWS }
func (c *overlapCheck) Fix() error       { return nil }

func (c *overlapCheck) Run(_ context.Context) CheckResult {
	*c.running++
	if *c.running > *c.peak {
		*c.peak = *c.running
	}
	time.Sleep(5 * time.Millisecond)
	*c.running--
	return CheckResult{Name: c.name, Status: StatusPass}
}

func TestRunAll_OneAtATime(t *testing.T) {
	var running, peak int
	checks := []Check{
		&overlapCheck{name: "aws_cli", running: &running, peak: &peak},
		&overlapCheck{name: "region", running: &running, peak: &peak},
		&overlapCheck{name: "credentials", running: &running, peak: &peak},
	}

	results := RunAll(context.Background(), checks)

	require.Len(t, results, 3)
	assert.Equal(t, "aws_cli", results[0].Name)
	assert.Equal(t, "credentials", results[2].Name)
	assert.Equal(t, 1, peak)
}

func TestByCategory(t *testing.T) {
	checks := mockChecks()
	grouped := ByCategory(checks, RunAll(context.Background(), checks))

	require.Len(t, grouped[CategoryConfig], 2)
	assert.Equal(t, "check1", grouped[CategoryConfig][0].Name)
	assert.Equal(t, "check3", grouped[CategoryConfig][1].Name)
	assert.Len(t, grouped[CategorySSH], 1)
	assert.Empty(t, grouped[CategoryAWS])
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus([]CheckResult{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusWarn},
		{Status: StatusFail},
	})

	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.Equal(t, 1, counts[StatusFail])
}

func TestHasFailuresAndIssues(t *testing.T) {
	tests := []struct {
		name         string
		results      []CheckResult
		wantFailures bool
		wantIssues   bool
	}{
		{"all pass", []CheckResult{{Status: StatusPass}, {Status: StatusPass}}, false, false},
		{"with warn", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, false, true},
		{"with fail", []CheckResult{{Status: StatusPass}, {Status: StatusFail}}, true, true},
		{"empty", nil, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantFailures, HasFailures(tc.results))
			assert.Equal(t, tc.wantIssues, HasIssues(tc.results))
		})
	}
}

func TestFixableCount(t *testing.T) {
	results := []CheckResult{
		{Status: StatusPass, Fixable: true},  // Pass, not counted
		{Status: StatusFail, Fixable: true},  // Counted
		{Status: StatusFail, Fixable: false}, // Not counted
		{Status: StatusWarn, Fixable: true},  // Counted
	}

	assert.Equal(t, 2, FixableCount(results))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []CheckResult
		want    string
	}{
		{"all good", []CheckResult{{Status: StatusPass}}, "Everything looks good"},
		{"one issue", []CheckResult{{Status: StatusFail}}, "1 issue found"},
		{"multiple issues", []CheckResult{{Status: StatusFail}, {Status: StatusWarn}}, "2 issues found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Summary(tc.results))
		})
	}
}

func TestNewChecks(t *testing.T) {
	checks := NewChecks(Options{})

	// Categories never go backwards, so output groups stay contiguous.
	order := map[string]int{}
	for i, c := range Categories {
		order[c] = i
	}
	last := 0
	names := map[string]bool{}
	for _, c := range checks {
		idx, ok := order[c.Category()]
		require.True(t, ok, "unknown category %s", c.Category())
		assert.GreaterOrEqual(t, idx, last)
		last = idx
		assert.False(t, names[c.Name()], "duplicate check %s", c.Name())
		names[c.Name()] = true
	}
}

func TestCheckResult_JSONStatus(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: StatusWarn, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","status":"warn","message":"m"}`, string(data))
}
