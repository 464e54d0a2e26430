package formatter

import (
	"fmt"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single work item row in the alignment tree display.
type TreeItem struct {
	ID       int
	Title    string
	Type     string
	State    string
	Level    int
	IsLast   bool
	Selected bool
	Badge    string // right-aligned detail badge, e.g. assignee or due date
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Closed items get a green ✔ prefix and a dimmed title, active
// items an amber ▶, and badges are right-aligned past the widest row.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := StyleDim.Render(fmt.Sprintf("#%d ", item.ID)) + item.Title
		statusPrefix := ""
		switch {
		case domain.IsClosedState(item.State):
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case strings.EqualFold(item.State, domain.StateActive):
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleDim.Render(fmt.Sprintf("#%d ", item.ID)) + StyleYellowBold.Render(item.Title)
		}

		content := prefix + statusPrefix + title
		if item.Selected {
			content = StyleHeader.Render("❯ ") + content
		} else {
			content = "  " + content
		}
		lines[idx].content = content

		if item.Badge != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Badge))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
