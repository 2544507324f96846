package redmine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redmine-cli/internal/apperr"
)

func entry(id int, activity string, h float64) TimeEntry {
	return TimeEntry{ID: id, Hours: h, SpentOn: "2024-05-01", Activity: Activity{Name: activity}}
}

func TestGroupTimeEntries_ByActivity(t *testing.T) {
	entries := []TimeEntry{entry(1, "Dev", 1.0), entry(2, "QA", 2.0), entry(3, "Dev", 0.5)}

	got := GroupTimeEntries(entries, GroupByActivity)

	require.Len(t, got.Groups, 2)
	assert.Equal(t, "Activity", got.GroupBy)
	assert.Equal(t, "Dev", got.Groups[0].Name)
	assert.InDelta(t, 1.5, got.Groups[0].Subtotal, 1e-9)
	assert.Equal(t, "QA", got.Groups[1].Name)
	assert.InDelta(t, 2.0, got.Groups[1].Subtotal, 1e-9)
	assert.InDelta(t, 3.5, got.TotalHours, 1e-9)
	assert.Equal(t, 3, got.TotalCount)

	ids := []int{got.Groups[0].Entries[0].ID, got.Groups[0].Entries[1].ID}
	if diff := cmp.Diff([]int{1, 3}, ids); diff != "" {
		t.Errorf("entry order (-want +got):\n%s", diff)
	}
}

func TestGroupTimeEntries_StringOrderAndMissingKeys(t *testing.T) {
	entries := []TimeEntry{
		{ID: 1, Hours: 1, Issue: &TimeEntryIssue{ID: 10}},
		{ID: 2, Hours: 1, Issue: &TimeEntryIssue{ID: 9}},
		{ID: 3, Hours: 1},
	}

	got := GroupTimeEntries(entries, GroupByIssue)

	var names []string
	for _, g := range got.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"#10", "#9", "No Issue"}, names)

	byUser := GroupTimeEntries(entries, GroupByUser)
	require.Len(t, byUser.Groups, 1)
	assert.Equal(t, "Unknown", byUser.Groups[0].Name)
}

func TestGroupTimeEntries_CustomField(t *testing.T) {
	entries := []TimeEntry{
		{ID: 1, Hours: 2, CustomFields: []CustomField{{ID: 4, Name: "Billable", Value: "yes"}}},
		{ID: 2, Hours: 1},
	}

	got := GroupTimeEntries(entries, GroupByCustomField(4))

	assert.Equal(t, "Custom Field 4", got.GroupBy)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "-", got.Groups[0].Name)
	assert.Equal(t, "yes", got.Groups[1].Name)
}

func TestGroupTimeEntries_Empty(t *testing.T) {
	got := GroupTimeEntries(nil, GroupBySpentOn)
	assert.Empty(t, got.Groups)
	assert.Zero(t, got.TotalHours)
}

func TestParseGroupField(t *testing.T) {
	for in, want := range map[string]string{
		"user":     "User",
		"Project":  "Project",
		"activity": "Activity",
		"issue":    "Issue",
		"spent_on": "Date",
		"date":     "Date",
		"cf_12":    "Custom Field 12",
	} {
		f, err := ParseGroupField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f.DisplayName(), in)
	}

	for _, bad := range []string{"", "tracker", "cf_", "cf_x"} {
		_, err := ParseGroupField(bad)
		assert.True(t, apperr.Is(err, apperr.KindValidation), bad)
	}
}

func TestGroupTimeEntries_KeysSortAsStrings(t *testing.T) {
	entries := []TimeEntry{
		{ID: 1, Hours: 1, SpentOn: "2024-05-01", Activity: Activity{Name: "QA"}},
		{ID: 2, Hours: 1, SpentOn: "2024-04-30", Activity: Activity{Name: "Sprint 2"}},
		{ID: 3, Hours: 1, SpentOn: "2024-05-10", Activity: Activity{Name: "Sprint 11"}},
		{ID: 4, Hours: 1, SpentOn: "2024-05-02", Activity: Activity{Name: "Dev"}},
	}

	names := func(g GroupedTimeEntries) []string {
		var out []string
		for _, grp := range g.Groups {
			out = append(out, grp.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Dev", "QA", "Sprint 11", "Sprint 2"}, names(GroupTimeEntries(entries, GroupByActivity)))
	assert.Equal(t, []string{"2024-04-30", "2024-05-01", "2024-05-02", "2024-05-10"}, names(GroupTimeEntries(entries, GroupBySpentOn)))
}
