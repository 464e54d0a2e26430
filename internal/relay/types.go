package relay

import (
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// NoEpicSentinel is the relay's "exclude Epics without restricting other
// types" marker for the type query parameter.
const NoEpicSentinel = "__NO_EPIC__"

// wireItem is the relay's JSON shape for a work item. Remote fields not
// modeled here (avatars, raw relation blobs) are dropped at this boundary.
type wireItem struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	State         string   `json:"state"`
	WorkItemType  string   `json:"workItemType"`
	Project       string   `json:"project"`
	ProjectID     string   `json:"projectId"`
	AreaPath      string   `json:"areaPath"`
	IterationPath string   `json:"iterationPath"`
	AssignedTo    string   `json:"assignedTo"`
	Priority      *int     `json:"priority"`
	OriginalEst   *float64 `json:"originalEstimate"`
	Remaining     *float64 `json:"remaining"`
	Tags          []string `json:"tags"`
	CreatedDate   *string  `json:"createdDate"`
	ChangedDate   *string  `json:"changedDate"`
	ClosedDate    *string  `json:"closedDate"`
	PlannedStart  *string  `json:"plannedStartDate"`
	TargetDate    *string  `json:"targetDate"`
	ParentID      *int     `json:"parentId"`
}

// toDomain maps a wire item into the domain shape. Project-scoped
// endpoints omit projectId, so the caller supplies the fallback.
func (w wireItem) toDomain(fallbackProjectID string) domain.WorkItem {
	projectID := domain.CoalesceStr(w.ProjectID, fallbackProjectID)

	item := domain.WorkItem{
		ProjectID:        projectID,
		ID:               w.ID,
		Title:            w.Title,
		Description:      w.Description,
		State:            w.State,
		Type:             w.WorkItemType,
		AreaPath:         w.AreaPath,
		IterationPath:    w.IterationPath,
		AssignedTo:       w.AssignedTo,
		Tags:             w.Tags,
		ParentID:         w.ParentID,
		CreatedDate:      parseDate(w.CreatedDate),
		ChangedDate:      parseDate(w.ChangedDate),
		ClosedDate:       parseDate(w.ClosedDate),
		PlannedStartDate: parseDate(w.PlannedStart),
		TargetDate:       parseDate(w.TargetDate),
	}
	if w.Priority != nil {
		item.Priority = *w.Priority
	}
	if w.OriginalEst != nil {
		item.OriginalEstimate = *w.OriginalEst
	}
	if w.Remaining != nil {
		item.Remaining = *w.Remaining
	}
	return item
}

type wireComment struct {
	ID          int     `json:"id"`
	Text        string  `json:"text"`
	CreatedDate *string `json:"createdDate"`
	CreatedBy   string  `json:"createdBy"`
}

func (w wireComment) toDomain() domain.Comment {
	return domain.Comment{
		ID:          w.ID,
		Text:        w.Text,
		CreatedBy:   w.CreatedBy,
		CreatedDate: parseDate(w.CreatedDate),
	}
}

type wireIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
	Mail        string `json:"mail"`
}

func (w wireIdentity) toDomain() domain.Identity {
	return domain.Identity(w)
}

type wireProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"`
}

func (w wireProject) toDomain() domain.Project {
	return domain.Project(w)
}

// dateLayouts covers the timestamp shapes the tracker emits, tried in
// order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// ItemFields is a partial create/update payload. Nil fields are left
// untouched by the relay; the authoritative post-mutation record comes
// back in the response.
type ItemFields struct {
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	State            *string  `json:"state,omitempty"`
	WorkItemType     *string  `json:"workItemType,omitempty"`
	AssignedTo       *string  `json:"assignedTo,omitempty"`
	Priority         *int     `json:"priority,omitempty"`
	AreaPath         *string  `json:"areaPath,omitempty"`
	IterationPath    *string  `json:"iterationPath,omitempty"`
	OriginalEstimate *float64 `json:"originalEstimate,omitempty"`
	Remaining        *float64 `json:"remaining,omitempty"`
	PlannedStartDate *string  `json:"plannedStartDate,omitempty"`
	TargetDate       *string  `json:"targetDate,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	ParentID         *int     `json:"parentId,omitempty"`
}

// ListFilters is the server-side facet set for ListItems. The relay
// treats these as advisory; exact filtering happens client side.
type ListFilters struct {
	States       []string
	Types        []string
	ExcludeEpics bool
	Keyword      string
	AssignedTo   string
}
