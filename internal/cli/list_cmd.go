package cli

import (
	"context"
	"fmt"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects visible to the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Directory.ListProjects(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProjectTable(projects))
			return nil
		},
	}
}

func newLookupCmd(app *App) *cobra.Command {
	var project, search string

	cmd := &cobra.Command{
		Use:       "lookup {tags|areas|iterations|people}",
		Short:     "List tags, area paths, iteration paths, or matching users",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"tags", "areas", "iterations", "people"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// People are organization-scoped, not project-scoped.
			if args[0] == "people" {
				if search == "" {
					return fmt.Errorf("--search is required for people lookup")
				}
				identities, err := app.Directory.SearchIdentities(ctx, search)
				if err != nil {
					return err
				}
				if len(identities) == 0 {
					fmt.Println(formatter.Dim("No matches."))
					return nil
				}
				for _, id := range identities {
					fmt.Printf("%s  %s\n", id.DisplayName, formatter.Dim("<"+id.UniqueName+">"))
				}
				return nil
			}

			if project == "" {
				project = app.Config.DefaultProject
			}
			if project == "" {
				return fmt.Errorf("--project is required")
			}

			var values []string
			var err error
			switch args[0] {
			case "tags":
				values, err = app.Directory.ListTags(ctx, project, search)
			case "areas":
				values, err = app.Directory.ListAreaPaths(ctx, project, search)
			case "iterations":
				values, err = app.Directory.ListIterationPaths(ctx, project, search)
			default:
				return fmt.Errorf("unknown lookup kind %q", args[0])
			}
			if err != nil {
				return err
			}
			if len(values) == 0 {
				fmt.Println(formatter.Dim("No matches."))
				return nil
			}
			for _, v := range values {
				fmt.Println(v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id (defaults to configured project)")
	cmd.Flags().StringVar(&search, "search", "", "Substring filter applied by the relay")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		tab      string
		keyword  string
		assigned string
		types    []string
		allTypes bool
		page     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the filtered work item dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			tabKey, err := parseTab(tab)
			if err != nil {
				return err
			}

			ctx := context.Background()
			f := app.Board.Filters()
			f.Keyword = keyword
			f.AssignedTo = assigned
			f.Types = types
			f.AllTypes = allTypes
			if err := app.Board.SetFilters(ctx, f); err != nil {
				return err
			}
			if page > 1 {
				app.Board.SetPage(page)
			}

			result, err := app.Board.Load(ctx, tabKey)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatItemTable(result.Items))
			f = app.Board.Filters()
			fmt.Println(formatter.FormatPageFooter(f.Page, f.PageSize, result.Total, result.HasMore))
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "all", "Tab: all, not-started, in-progress, completed")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Title substring, #id, or type shorthand like bug-login")
	cmd.Flags().StringVar(&assigned, "assigned", "", "Assignee substring")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Work item types (repeatable)")
	cmd.Flags().BoolVar(&allTypes, "all-types", false, "Include Epics in the result set")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func parseTab(s string) (domain.TabKey, error) {
	switch s {
	case "", "all":
		return domain.TabAll, nil
	case "not-started", "new":
		return domain.TabNotStarted, nil
	case "in-progress", "active":
		return domain.TabInProgress, nil
	case "completed", "closed":
		return domain.TabCompleted, nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}
