package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runView starts a bubbletea program with the given view as the home of
// the navigation stack.
func runView(app *App, home View) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("this view requires an interactive terminal")
	}
	program := tea.NewProgram(
		newAppModel(app, home),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}

func newBoardCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive work item dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := &SharedState{App: app}
			if project != "" {
				state.SetActiveProject(project, project)
			}
			return runView(app, newBoardView(state))
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Force a single-project scope")
	return cmd
}

func newAlignCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "align <item-id>",
		Short: "Open the alignment tree rooted at a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}
			rootID, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			state := &SharedState{App: app}
			return runView(app, newAlignView(state, projectID, rootID))
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	return cmd
}

func newGanttCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gantt",
		Short: "Open the planned-date timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := &SharedState{App: app}
			return runView(app, newGanttView(state))
		},
	}
}
