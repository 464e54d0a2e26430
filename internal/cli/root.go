package cli

import (
	"context"

	"github.com/PicoEvanZhu/workdeck/internal/config"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/service"
	"github.com/spf13/cobra"
)

// Directory covers the relay operations outside the work item services:
// session management and organization-level lookups. *relay.Client
// satisfies it.
type Directory interface {
	Login(ctx context.Context, organization, pat string) error
	Logout(ctx context.Context) error
	Session(ctx context.Context) (bool, string, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTags(ctx context.Context, projectID, search string) ([]string, error)
	ListAreaPaths(ctx context.Context, projectID, search string) ([]string, error)
	ListIterationPaths(ctx context.Context, projectID, search string) ([]string, error)
	SearchIdentities(ctx context.Context, search string) ([]domain.Identity, error)
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Config    config.Config
	Board     service.BoardService
	Alignment service.AlignmentService
	Timeline  service.TimelineService
	Items     service.WorkItemService
	Directory Directory

	// IsInteractive reports whether stdin is a terminal; forms and TUI
	// views require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "workdeck" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "workdeck",
		Short: "Work item dashboard, alignment tree, and timeline",
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newSessionCmd(app),
		newProjectsCmd(app),
		newLookupCmd(app),
		newListCmd(app),
		newItemCmd(app),
		newBoardCmd(app),
		newAlignCmd(app),
		newGanttCmd(app),
	)

	return root
}
