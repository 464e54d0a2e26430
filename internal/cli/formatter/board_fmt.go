package formatter

import (
	"fmt"
	"strconv"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// FormatItemTable renders work items as the dashboard table.
func FormatItemTable(items []domain.WorkItem) string {
	if len(items) == 0 {
		return StyleDim.Render("No work items match the current filters.")
	}
	headers := []string{"ID", "Title", "Type", "State", "Assigned", "Target"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		assigned := it.AssignedTo
		if assigned == "" {
			assigned = StyleDim.Render("--")
		}
		rows = append(rows, []string{
			StyleDim.Render(strconv.Itoa(it.ID)),
			TruncTitle(it.Title, 48),
			TypeBadge(it.Type),
			StatePill(it.State),
			assigned,
			ShortDate(it.TargetDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectTable renders the project directory listing.
func FormatProjectTable(projects []domain.Project) string {
	if len(projects) == 0 {
		return StyleDim.Render("No projects visible for this organization.")
	}
	headers := []string{"ID", "Name", "State"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{StyleDim.Render(p.ID), Bold(p.Name), p.State})
	}
	return RenderTable(headers, rows)
}

// FormatPageFooter renders the "page N of ~M items" pagination line.
func FormatPageFooter(page, pageSize, total int, hasMore bool) string {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	label := fmt.Sprintf("page %d/%d · %d items", page, pages, total)
	if hasMore {
		label = fmt.Sprintf("page %d/%d+ · %d+ items", page, pages, total-1)
	}
	return StyleDim.Render(label)
}
