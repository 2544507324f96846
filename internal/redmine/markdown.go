package redmine

import (
	"fmt"
	"strconv"
	"strings"

	"redmine-cli/internal/output"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func hours(h float64) string { return fmt.Sprintf("%.2f", h) }

func projectStatusName(status int) string {
	switch status {
	case 1:
		return "Active"
	case 5:
		return "Closed"
	case 9:
		return "Archived"
	}
	return "Unknown"
}

func appendCustomFields(b *strings.Builder, fields []CustomField) {
	if len(fields) == 0 {
		return
	}
	b.WriteString("\n### Custom Fields\n\n")
	pairs := make([]output.KV, 0, len(fields))
	for _, cf := range fields {
		pairs = append(pairs, output.KV{Key: cf.Name, Value: cf.DisplayValue()})
	}
	b.WriteString(output.KVTable(pairs))
}

func appendHint(b *strings.Builder, command string, meta output.Meta) {
	if hint := output.PaginationHint(command, meta); hint != "" {
		b.WriteString("\n" + hint + "\n")
	}
}

func (p PingResult) Markdown(output.Meta) string {
	return fmt.Sprintf("## Ping\n\n- **Status**: %s\n- **URL**: %s\n", p.Status, p.URL)
}

func (u CurrentUser) Markdown(output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Current User: %s\n\n", u.FullName())
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(u.ID)},
		{Key: "Login", Value: u.Login},
		{Key: "Name", Value: u.FullName()},
	}
	if u.Mail != "" {
		pairs = append(pairs, output.KV{Key: "Email", Value: u.Mail})
	}
	if u.Admin != nil {
		pairs = append(pairs, output.KV{Key: "Admin", Value: yesNo(*u.Admin)})
	}
	if u.CreatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Created", Value: u.CreatedOn})
	}
	if u.LastLoginOn != "" {
		pairs = append(pairs, output.KV{Key: "Last Login", Value: u.LastLoginOn})
	}
	b.WriteString(output.KVTable(pairs))
	return b.String()
}

func (u User) Markdown(output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## User: %s\n\n", u.FullName())
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(u.ID)},
		{Key: "Login", Value: u.Login},
		{Key: "Name", Value: u.FullName()},
		{Key: "Email", Value: output.OrDash(u.Mail)},
		{Key: "Status", Value: u.StatusName()},
	}
	if u.CreatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Created", Value: u.CreatedOn})
	}
	if u.LastLoginOn != "" {
		pairs = append(pairs, output.KV{Key: "Last Login", Value: u.LastLoginOn})
	}
	b.WriteString(output.KVTable(pairs))
	return b.String()
}

func (l UserList) Markdown(meta output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Users (showing %s)\n\n", meta.Range(len(l.Users)))
	if len(l.Users) == 0 {
		b.WriteString("*No users found*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(l.Users))
	for _, u := range l.Users {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Login, u.FullName(), output.OrDash(u.Mail), u.StatusName()})
	}
	b.WriteString(output.Table([]string{"ID", "Login", "Name", "Email", "Status"}, rows))
	appendHint(&b, "rdm user list", meta)
	return b.String()
}

func (p Project) Markdown(output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Project: %s (%s)\n\n", p.Name, p.Identifier)
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(p.ID)},
		{Key: "Name", Value: p.Name},
		{Key: "Identifier", Value: p.Identifier},
	}
	if p.Status != nil {
		pairs = append(pairs, output.KV{Key: "Status", Value: projectStatusName(*p.Status)})
	}
	if p.IsPublic != nil {
		pairs = append(pairs, output.KV{Key: "Public", Value: yesNo(*p.IsPublic)})
	}
	if p.CreatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Created", Value: p.CreatedOn})
	}
	if p.UpdatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Updated", Value: p.UpdatedOn})
	}
	b.WriteString(output.KVTable(pairs))
	if p.Description != "" {
		b.WriteString("\n### Description\n\n" + p.Description + "\n")
	}
	fmt.Fprintf(&b, "\n*Use `rdm issue list --project %s` to see issues*\n", p.Identifier)
	return b.String()
}

func (l ProjectList) Markdown(meta output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Projects (showing %s)\n\n", meta.Range(len(l.Projects)))
	if len(l.Projects) == 0 {
		b.WriteString("*No projects found*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(l.Projects))
	for _, p := range l.Projects {
		status := "-"
		if p.Status != nil {
			status = projectStatusName(*p.Status)
		}
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Identifier, p.Name, status})
	}
	b.WriteString(output.Table([]string{"ID", "Identifier", "Name", "Status"}, rows))
	appendHint(&b, "rdm project list", meta)
	return b.String()
}

func (i Issue) Markdown(output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Issue #%d: %s\n\n", i.ID, i.Subject)
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(i.ID)},
		{Key: "Subject", Value: i.Subject},
		{Key: "Project", Value: i.Project.Name},
		{Key: "Status", Value: i.Status.Name},
		{Key: "Priority", Value: i.Priority.Name},
	}
	if i.Tracker != nil {
		pairs = append(pairs, output.KV{Key: "Tracker", Value: i.Tracker.Name})
	}
	if i.AssignedTo != nil {
		pairs = append(pairs, output.KV{Key: "Assignee", Value: i.AssignedTo.Name})
	}
	if i.Author != nil {
		pairs = append(pairs, output.KV{Key: "Author", Value: i.Author.Name})
	}
	if i.StartDate != "" {
		pairs = append(pairs, output.KV{Key: "Start Date", Value: i.StartDate})
	}
	if i.DueDate != "" {
		pairs = append(pairs, output.KV{Key: "Due Date", Value: i.DueDate})
	}
	if i.DoneRatio != nil {
		pairs = append(pairs, output.KV{Key: "Done", Value: fmt.Sprintf("%d%%", *i.DoneRatio)})
	}
	if i.EstimatedHours != nil {
		pairs = append(pairs, output.KV{Key: "Estimated", Value: hours(*i.EstimatedHours) + "h"})
	}
	if i.SpentHours != nil {
		pairs = append(pairs, output.KV{Key: "Spent", Value: hours(*i.SpentHours) + "h"})
	}
	if i.CreatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Created", Value: i.CreatedOn})
	}
	if i.UpdatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Updated", Value: i.UpdatedOn})
	}
	b.WriteString(output.KVTable(pairs))
	appendCustomFields(&b, i.CustomFields)
	if i.Description != "" {
		b.WriteString("\n### Description\n\n" + i.Description + "\n")
	}
	fmt.Fprintf(&b, "\n*Use `rdm issue update --id %d` to modify this issue*\n", i.ID)
	return b.String()
}

func (l IssueList) Markdown(meta output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Issues (showing %s)\n\n", meta.Range(len(l.Issues)))
	if len(l.Issues) == 0 {
		b.WriteString("*No issues found*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(l.Issues))
	for _, i := range l.Issues {
		assignee := "-"
		if i.AssignedTo != nil {
			assignee = i.AssignedTo.Name
		}
		rows = append(rows, []string{
			strconv.Itoa(i.ID),
			output.Truncate(i.Subject, 40),
			i.Status.Name,
			i.Priority.Name,
			assignee,
			output.OrDash(i.UpdatedOn),
		})
	}
	b.WriteString(output.Table([]string{"ID", "Subject", "Status", "Priority", "Assignee", "Updated"}, rows))
	appendHint(&b, "rdm issue list", meta)
	return b.String()
}

func (l ActivityList) Markdown(output.Meta) string {
	var b strings.Builder
	b.WriteString("## Time Entry Activities\n\n")
	if len(l.TimeEntryActivities) == 0 {
		b.WriteString("*No activities found*\n")
		return b.String()
	}
	for _, a := range l.TimeEntryActivities {
		marker := ""
		if a.IsDefault != nil && *a.IsDefault {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "- **%s** (ID: %d)%s\n", a.Name, a.ID, marker)
	}
	return b.String()
}

func timeEntryRow(t TimeEntry) []string {
	user, issue := "-", "-"
	if t.User != nil {
		user = output.Truncate(t.User.Name, 15)
	}
	if t.Issue != nil {
		issue = "#" + strconv.Itoa(t.Issue.ID)
	}
	return []string{
		strconv.Itoa(t.ID),
		t.SpentOn,
		hours(t.Hours),
		user,
		t.Activity.Name,
		issue,
		output.Truncate(strings.ReplaceAll(output.OrDash(t.Comments), "\n", " "), 30),
	}
}

var timeEntryHeaders = []string{"ID", "Date", "Hours", "User", "Activity", "Issue", "Comment"}

func (t TimeEntry) Markdown(output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Time Entry #%d\n\n", t.ID)
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(t.ID)},
		{Key: "Hours", Value: hours(t.Hours)},
		{Key: "Activity", Value: t.Activity.Name},
		{Key: "Date", Value: t.SpentOn},
	}
	if t.User != nil {
		pairs = append(pairs, output.KV{Key: "User", Value: t.User.Name})
	}
	if t.Project != nil {
		pairs = append(pairs, output.KV{Key: "Project", Value: t.Project.Name})
	}
	if t.Issue != nil {
		pairs = append(pairs, output.KV{Key: "Issue", Value: "#" + strconv.Itoa(t.Issue.ID)})
	}
	if t.Comments != "" {
		pairs = append(pairs, output.KV{Key: "Comment", Value: t.Comments})
	}
	if t.CreatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Created", Value: t.CreatedOn})
	}
	if t.UpdatedOn != "" {
		pairs = append(pairs, output.KV{Key: "Updated", Value: t.UpdatedOn})
	}
	b.WriteString(output.KVTable(pairs))
	appendCustomFields(&b, t.CustomFields)
	fmt.Fprintf(&b, "\n*Use `rdm time update --id %d` to modify or `rdm time delete --id %d` to remove*\n", t.ID, t.ID)
	return b.String()
}

func (l TimeEntryList) Markdown(meta output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Time Entries (showing %s)\n\n", meta.Range(len(l.TimeEntries)))
	if len(l.TimeEntries) == 0 {
		b.WriteString("*No time entries found*\n")
		return b.String()
	}
	var total float64
	rows := make([][]string, 0, len(l.TimeEntries))
	for _, t := range l.TimeEntries {
		total += t.Hours
		rows = append(rows, timeEntryRow(t))
	}
	b.WriteString(output.Table(timeEntryHeaders, rows))
	fmt.Fprintf(&b, "\n**Total: %s hours**\n", hours(total))
	appendHint(&b, "rdm time list", meta)
	return b.String()
}

func (g GroupedTimeEntries) Markdown(meta output.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Time Entries by %s (%d entries)\n\n", g.GroupBy, g.TotalCount)
	if len(g.Groups) == 0 {
		b.WriteString("*No time entries found*\n")
		return b.String()
	}
	for _, group := range g.Groups {
		fmt.Fprintf(&b, "### %s (%s hours)\n\n", group.Name, hours(group.Subtotal))
		rows := make([][]string, 0, len(group.Entries))
		for _, t := range group.Entries {
			rows = append(rows, timeEntryRow(t))
		}
		b.WriteString(output.Table(timeEntryHeaders, rows))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**Grand Total: %s hours**\n", hours(g.TotalHours))
	appendHint(&b, "rdm time list", meta)
	return b.String()
}

func (l TrackerList) Markdown(output.Meta) string {
	var b strings.Builder
	b.WriteString("## Trackers\n\n")
	if len(l.Trackers) == 0 {
		b.WriteString("*No trackers found*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(l.Trackers))
	for _, t := range l.Trackers {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.Name, output.OrDash(t.Description)})
	}
	b.WriteString(output.Table([]string{"ID", "Name", "Description"}, rows))
	return b.String()
}

func (l VersionList) Markdown(output.Meta) string {
	var b strings.Builder
	b.WriteString("## Versions\n\n")
	if len(l.Versions) == 0 {
		b.WriteString("*No versions found*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(l.Versions))
	for _, v := range l.Versions {
		rows = append(rows, []string{strconv.Itoa(v.ID), v.Name, v.Status, output.OrDash(v.DueDate), output.OrDash(v.Sharing)})
	}
	b.WriteString(output.Table([]string{"ID", "Name", "Status", "Due Date", "Sharing"}, rows))
	return b.String()
}
