package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context. Empty means the all-projects scope.
	ActiveProjectID   string
	ActiveProjectName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject sets the forced single-project context.
func (s *SharedState) SetActiveProject(id, name string) {
	s.ActiveProjectID = id
	s.ActiveProjectName = name
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
