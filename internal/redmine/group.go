package redmine

import (
	"sort"
	"strconv"
	"strings"

	"redmine-cli/internal/apperr"
)

// GroupField selects the key time entries are grouped by.
type GroupField struct {
	kind          string
	customFieldID int
}

var (
	GroupByUser     = GroupField{kind: "user"}
	GroupByProject  = GroupField{kind: "project"}
	GroupByActivity = GroupField{kind: "activity"}
	GroupByIssue    = GroupField{kind: "issue"}
	GroupBySpentOn  = GroupField{kind: "spent_on"}
)

// GroupByCustomField groups by the display value of custom field id.
func GroupByCustomField(id int) GroupField {
	return GroupField{kind: "cf", customFieldID: id}
}

// ParseGroupField accepts user, project, activity, issue, spent_on (or date)
// and cf_<id>.
func ParseGroupField(s string) (GroupField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return GroupByUser, nil
	case "project":
		return GroupByProject, nil
	case "activity":
		return GroupByActivity, nil
	case "issue":
		return GroupByIssue, nil
	case "spent_on", "date":
		return GroupBySpentOn, nil
	}
	if rest, ok := strings.CutPrefix(s, "cf_"); ok {
		if id, err := strconv.ParseUint(rest, 10, 31); err == nil {
			return GroupByCustomField(int(id)), nil
		}
	}
	return GroupField{}, apperr.Validationf("invalid group-by field: '%s'", s).
		WithHint("Valid values: user, project, activity, issue, spent_on, cf_<id>")
}

// DisplayName is the heading used for the grouping.
func (g GroupField) DisplayName() string {
	switch g.kind {
	case "user":
		return "User"
	case "project":
		return "Project"
	case "activity":
		return "Activity"
	case "issue":
		return "Issue"
	case "spent_on":
		return "Date"
	case "cf":
		return "Custom Field " + strconv.Itoa(g.customFieldID)
	}
	return ""
}

func (g GroupField) key(e TimeEntry) string {
	switch g.kind {
	case "user":
		if e.User != nil {
			return e.User.Name
		}
		return "Unknown"
	case "project":
		if e.Project != nil {
			return e.Project.Name
		}
		return "Unknown"
	case "activity":
		return e.Activity.Name
	case "issue":
		if e.Issue != nil {
			return "#" + strconv.Itoa(e.Issue.ID)
		}
		return "No Issue"
	case "spent_on":
		return e.SpentOn
	case "cf":
		if cf, ok := findCustomField(e.CustomFields, g.customFieldID); ok {
			return cf.DisplayValue()
		}
	}
	return "-"
}

type TimeEntryGroup struct {
	Name     string      `json:"name"`
	Entries  []TimeEntry `json:"entries"`
	Subtotal float64     `json:"subtotal"`
}

type GroupedTimeEntries struct {
	GroupBy    string           `json:"group_by"`
	Groups     []TimeEntryGroup `json:"groups"`
	TotalHours float64          `json:"total_hours"`
	TotalCount int              `json:"total_count"`
}

// GroupTimeEntries partitions entries by field. Groups are ordered by their
// key as a plain string ("#10" before "#9"); entries keep their original order.
func GroupTimeEntries(entries []TimeEntry, field GroupField) GroupedTimeEntries {
	byKey := map[string]*TimeEntryGroup{}
	var keys []string
	for _, e := range entries {
		k := field.key(e)
		g, ok := byKey[k]
		if !ok {
			g = &TimeEntryGroup{Name: k, Entries: []TimeEntry{}}
			byKey[k] = g
			keys = append(keys, k)
		}
		g.Entries = append(g.Entries, e)
		g.Subtotal += e.Hours
	}
	sort.Strings(keys)

	out := GroupedTimeEntries{GroupBy: field.DisplayName(), Groups: make([]TimeEntryGroup, 0, len(keys))}
	for _, k := range keys {
		g := byKey[k]
		out.Groups = append(out.Groups, *g)
		out.TotalHours += g.Subtotal
		out.TotalCount += len(g.Entries)
	}
	return out
}
