package formatter

import (
	"fmt"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// FormatItemDetail renders a full work item record as a boxed detail card.
// parentTitle may be empty when the parent has not been resolved.
func FormatItemDetail(item domain.WorkItem, parentTitle string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(fmt.Sprintf("#%d", item.ID)), Bold(item.Title)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", TypeBadge(item.Type), StatePill(item.State)))

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", name)), value))
	}

	if item.AssignedTo != "" {
		field("Assigned", item.AssignedTo)
	} else {
		field("Assigned", StyleDim.Render("unassigned"))
	}
	field("Priority", fmt.Sprintf("%d", item.Priority))
	field("Planned", ShortDate(item.PlannedStartDate))
	field("Target", ShortDate(item.TargetDate))
	if item.ClosedDate != nil {
		field("Closed", ShortDate(item.ClosedDate))
	}
	field("Estimate", FormatHours(item.OriginalEstimate))
	field("Remaining", FormatHours(item.Remaining))
	if item.AreaPath != "" {
		field("Area", item.AreaPath)
	}
	if item.IterationPath != "" {
		field("Iteration", item.IterationPath)
	}
	if len(item.Tags) > 0 {
		field("Tags", StylePurple.Render(strings.Join(item.Tags, ", ")))
	}
	if item.ParentID != nil {
		parent := fmt.Sprintf("#%d", *item.ParentID)
		if parentTitle != "" {
			parent += " " + parentTitle
		}
		field("Parent", parent)
	}

	if item.Description != "" {
		b.WriteString("\n" + item.Description + "\n")
	}

	return RenderBox(item.Type, strings.TrimRight(b.String(), "\n"))
}

// FormatComments renders a discussion thread, newest entry first as the
// relay returns it.
func FormatComments(comments []domain.Comment) string {
	if len(comments) == 0 {
		return StyleDim.Render("No comments.")
	}
	var b strings.Builder
	for i, c := range comments {
		author := Bold(c.CreatedBy)
		when := ""
		if c.CreatedDate != nil {
			when = StyleDim.Render(HumanTimestamp(*c.CreatedDate))
		}
		b.WriteString(fmt.Sprintf("%s %s\n%s\n", author, when, c.Text))
		if i < len(comments)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
