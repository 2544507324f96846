package redmine

import "redmine-cli/internal/output"

// ProjectRef is the short project form embedded in other resources.
type ProjectRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserRef is the short user form embedded in other resources.
type UserRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login,omitempty"`
}

type Tracker struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Status struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsClosed *bool  `json:"is_closed,omitempty"`
}

type Priority struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Pagination is the paging block Redmine adds to every list response.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
}

// Meta converts the paging block for output.
func (p Pagination) Meta() output.Meta {
	return output.Paginated(p.TotalCount, p.Limit, p.Offset)
}

type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description,omitempty"`
	Status      *int   `json:"status,omitempty"`
	IsPublic    *bool  `json:"is_public,omitempty"`
	CreatedOn   string `json:"created_on,omitempty"`
	UpdatedOn   string `json:"updated_on,omitempty"`
}

type ProjectList struct {
	Projects []Project `json:"projects"`
	Pagination
}

type Issue struct {
	ID             int           `json:"id"`
	Subject        string        `json:"subject"`
	Description    string        `json:"description,omitempty"`
	Project        ProjectRef    `json:"project"`
	Tracker        *Tracker      `json:"tracker,omitempty"`
	Status         Status        `json:"status"`
	Priority       Priority      `json:"priority"`
	Author         *UserRef      `json:"author,omitempty"`
	AssignedTo     *UserRef      `json:"assigned_to,omitempty"`
	StartDate      string        `json:"start_date,omitempty"`
	DueDate        string        `json:"due_date,omitempty"`
	DoneRatio      *int          `json:"done_ratio,omitempty"`
	EstimatedHours *float64      `json:"estimated_hours,omitempty"`
	SpentHours     *float64      `json:"spent_hours,omitempty"`
	CreatedOn      string        `json:"created_on,omitempty"`
	UpdatedOn      string        `json:"updated_on,omitempty"`
	CustomFields   []CustomField `json:"custom_fields,omitempty"`
}

type IssueList struct {
	Issues []Issue `json:"issues"`
	Pagination
}

// IssueFilters narrows an issue listing. Empty fields are not sent.
type IssueFilters struct {
	Project      string
	Status       string
	AssignedTo   string
	Author       string
	Tracker      string
	Subject      string
	CustomFields []CustomFieldValue
	Limit        int
	Offset       int
}

type NewIssue struct {
	ProjectID      int                `json:"project_id"`
	Subject        string             `json:"subject"`
	Description    string             `json:"description,omitempty"`
	TrackerID      *int               `json:"tracker_id,omitempty"`
	StatusID       *int               `json:"status_id,omitempty"`
	PriorityID     *int               `json:"priority_id,omitempty"`
	AssignedToID   *int               `json:"assigned_to_id,omitempty"`
	StartDate      string             `json:"start_date,omitempty"`
	DueDate        string             `json:"due_date,omitempty"`
	EstimatedHours *float64           `json:"estimated_hours,omitempty"`
	CustomFields   []CustomFieldValue `json:"custom_fields,omitempty"`
}

// UpdateIssue holds only the fields being changed.
type UpdateIssue struct {
	Subject        *string            `json:"subject,omitempty"`
	Description    *string            `json:"description,omitempty"`
	TrackerID      *int               `json:"tracker_id,omitempty"`
	StatusID       *int               `json:"status_id,omitempty"`
	PriorityID     *int               `json:"priority_id,omitempty"`
	AssignedToID   *int               `json:"assigned_to_id,omitempty"`
	StartDate      *string            `json:"start_date,omitempty"`
	DueDate        *string            `json:"due_date,omitempty"`
	EstimatedHours *float64           `json:"estimated_hours,omitempty"`
	DoneRatio      *int               `json:"done_ratio,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	CustomFields   []CustomFieldValue `json:"custom_fields,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u UpdateIssue) IsEmpty() bool {
	return u.Subject == nil && u.Description == nil && u.TrackerID == nil &&
		u.StatusID == nil && u.PriorityID == nil && u.AssignedToID == nil &&
		u.StartDate == nil && u.DueDate == nil && u.EstimatedHours == nil &&
		u.DoneRatio == nil && u.Notes == nil && len(u.CustomFields) == 0
}

type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Datetime    string `json:"datetime,omitempty"`
}

type SearchResults struct {
	Results []SearchResult `json:"results"`
	Pagination
}

type Activity struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsDefault *bool  `json:"is_default,omitempty"`
}

type ActivityList struct {
	TimeEntryActivities []Activity `json:"time_entry_activities"`
}

type TimeEntryIssue struct {
	ID int `json:"id"`
}

type TimeEntry struct {
	ID           int             `json:"id"`
	Hours        float64         `json:"hours"`
	Comments     string          `json:"comments,omitempty"`
	SpentOn      string          `json:"spent_on"`
	Activity     Activity        `json:"activity"`
	User         *UserRef        `json:"user,omitempty"`
	Project      *ProjectRef     `json:"project,omitempty"`
	Issue        *TimeEntryIssue `json:"issue,omitempty"`
	CreatedOn    string          `json:"created_on,omitempty"`
	UpdatedOn    string          `json:"updated_on,omitempty"`
	CustomFields []CustomField   `json:"custom_fields,omitempty"`
}

type TimeEntryList struct {
	TimeEntries []TimeEntry `json:"time_entries"`
	Pagination
}

// TimeEntryFilters narrows a time entry listing. Zero values are not sent.
type TimeEntryFilters struct {
	Project      string
	Issue        int
	User         string
	From         string
	To           string
	CustomFields []CustomFieldValue
	Limit        int
	Offset       int
}

type NewTimeEntry struct {
	IssueID    *int    `json:"issue_id,omitempty"`
	ProjectID  *int    `json:"project_id,omitempty"`
	Hours      float64 `json:"hours"`
	ActivityID int     `json:"activity_id"`
	SpentOn    string  `json:"spent_on,omitempty"`
	Comments   string  `json:"comments,omitempty"`
	UserID     *int    `json:"user_id,omitempty"`
}

type UpdateTimeEntry struct {
	Hours      *float64 `json:"hours,omitempty"`
	ActivityID *int     `json:"activity_id,omitempty"`
	SpentOn    *string  `json:"spent_on,omitempty"`
	Comments   *string  `json:"comments,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u UpdateTimeEntry) IsEmpty() bool {
	return u.Hours == nil && u.ActivityID == nil && u.SpentOn == nil && u.Comments == nil
}

// CurrentUser is the account owning the API key.
type CurrentUser struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Mail        string `json:"mail,omitempty"`
	Admin       *bool  `json:"admin,omitempty"`
	CreatedOn   string `json:"created_on,omitempty"`
	LastLoginOn string `json:"last_login_on,omitempty"`
}

func (u CurrentUser) FullName() string { return u.Firstname + " " + u.Lastname }

// User is the full record returned by /users.json.
type User struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Mail        string `json:"mail,omitempty"`
	CreatedOn   string `json:"created_on,omitempty"`
	LastLoginOn string `json:"last_login_on,omitempty"`
	Status      *int   `json:"status,omitempty"`
}

func (u User) FullName() string { return u.Firstname + " " + u.Lastname }

// StatusName maps the numeric account status.
func (u User) StatusName() string {
	if u.Status == nil {
		return "Unknown"
	}
	switch *u.Status {
	case UserStatusActive:
		return "Active"
	case UserStatusRegistered:
		return "Registered"
	case UserStatusLocked:
		return "Locked"
	}
	return "Unknown"
}

const (
	UserStatusActive     = 1
	UserStatusRegistered = 2
	UserStatusLocked     = 3
)

type UserList struct {
	Users []User `json:"users"`
	Pagination
}

type TrackerList struct {
	Trackers []Tracker `json:"trackers"`
}

// Version is a project milestone.
type Version struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Project     ProjectRef `json:"project"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     string     `json:"due_date,omitempty"`
	Sharing     string     `json:"sharing,omitempty"`
	CreatedOn   string     `json:"created_on,omitempty"`
	UpdatedOn   string     `json:"updated_on,omitempty"`
}

type VersionList struct {
	Versions   []Version `json:"versions"`
	TotalCount int       `json:"total_count"`
}

// PingResult reports server reachability.
type PingResult struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}
