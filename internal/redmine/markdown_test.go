package redmine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"redmine-cli/internal/output"
)

func TestIssueListMarkdown(t *testing.T) {
	list := IssueList{
		Issues: []Issue{{
			ID:       12,
			Subject:  "Login page throws an error when the password contains unicode",
			Status:   Status{Name: "New"},
			Priority: Priority{Name: "High"},
		}},
		Pagination: Pagination{TotalCount: 30, Limit: 25, Offset: 0},
	}

	md := list.Markdown(list.Meta())

	assert.Contains(t, md, "## Issues (showing 1-1 of 30)")
	assert.Contains(t, md, "| 12 | Login page throws an error when the p... | New | High | - | - |")
	assert.Contains(t, md, "*Use `rdm issue list --offset 25` for next page*")
}

func TestTimeEntryListMarkdownTotals(t *testing.T) {
	list := TimeEntryList{TimeEntries: []TimeEntry{entry(1, "Dev", 1.25), entry(2, "QA", 2)}}

	md := list.Markdown(output.Meta{})

	assert.Contains(t, md, "**Total: 3.25 hours**")
	assert.NotContains(t, md, "next page")
}

func TestGroupedMarkdown(t *testing.T) {
	g := GroupTimeEntries([]TimeEntry{entry(1, "Dev", 1), entry(2, "QA", 2)}, GroupByActivity)

	md := g.Markdown(output.Meta{})

	assert.Contains(t, md, "## Time Entries by Activity (2 entries)")
	assert.Contains(t, md, "### Dev (1.00 hours)")
	assert.Contains(t, md, "**Grand Total: 3.00 hours**")
}

func TestEmptyListsMarkdown(t *testing.T) {
	assert.Contains(t, ProjectList{}.Markdown(output.Meta{}), "*No projects found*")
	assert.Contains(t, UserList{}.Markdown(output.Meta{}), "*No users found*")
	assert.Contains(t, ActivityList{}.Markdown(output.Meta{}), "*No activities found*")
}

func TestVersionListMarkdown(t *testing.T) {
	md := VersionList{Versions: []Version{{ID: 3, Name: "1.0", Status: "open"}}}.Markdown(output.Meta{})
	assert.Contains(t, md, "## Versions")
	assert.Contains(t, md, "| 3 | 1.0 | open | - | - |")

	assert.Contains(t, VersionList{}.Markdown(output.Meta{}), "*No versions found*")
}
