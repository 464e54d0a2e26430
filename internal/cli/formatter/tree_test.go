package formatter

import (
	"strings"
	"testing"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderTree_ConnectorsAndStatusGlyphs(t *testing.T) {
	items := []TreeItem{
		{ID: 10, Title: "Platform epic", Type: domain.TypeEpic, State: domain.StateActive, Level: 0},
		{ID: 11, Title: "Login feature", Type: domain.TypeFeature, State: domain.StateClosed, Level: 1},
		{ID: 12, Title: "Audit feature", Type: domain.TypeFeature, State: domain.StateNew, Level: 1, IsLast: true, Badge: "due 05-12"},
	}

	out := RenderTree(items)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)

	assert.Contains(t, lines[0], "#10")
	assert.Contains(t, lines[0], "▶", "active root carries the active glyph")
	assert.Contains(t, lines[1], treeBranch)
	assert.Contains(t, lines[1], "✔", "closed child carries the done glyph")
	assert.Contains(t, lines[2], treeCorner)
	assert.Contains(t, lines[2], "[ due 05-12 ]")
}

func TestRenderTree_SelectionMarker(t *testing.T) {
	items := []TreeItem{
		{ID: 1, Title: "Root", State: domain.StateNew},
		{ID: 2, Title: "Child", State: domain.StateNew, Level: 1, IsLast: true, Selected: true},
	}
	out := RenderTree(items)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.NotContains(t, lines[0], "❯")
	assert.Contains(t, lines[1], "❯")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
