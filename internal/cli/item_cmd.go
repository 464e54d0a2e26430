package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect and mutate single work items",
	}

	cmd.AddCommand(
		newItemGetCmd(app),
		newItemNewCmd(app),
		newItemEditCmd(app),
		newItemCommentCmd(app),
		newItemDeleteCmd(app),
	)
	return cmd
}

// resolveProject falls back from the --project flag to the configured
// default project.
func resolveProject(app *App, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if app.Config.DefaultProject != "" {
		return app.Config.DefaultProject, nil
	}
	return "", fmt.Errorf("--project is required (no default project configured)")
}

func parseItemID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid work item id %q", arg)
	}
	return id, nil
}

func newItemGetCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a work item with its discussion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			item, err := app.Items.Get(ctx, projectID, id)
			if err != nil {
				return err
			}
			parent := ""
			if item.ParentID != nil {
				if p, err := app.Items.Get(ctx, projectID, *item.ParentID); err == nil {
					parent = p.Title
				}
			}
			comments, err := app.Items.Comments(ctx, projectID, id)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatItemDetail(item, parent))
			fmt.Println()
			fmt.Println(formatter.Header("Discussion"))
			fmt.Println(formatter.FormatComments(comments))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	return cmd
}

func newItemNewCmd(app *App) *cobra.Command {
	var project string
	var vals itemFormValues
	var parent int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}

			if vals.Title == "" {
				if !app.IsInteractive() {
					return fmt.Errorf("--title is required when stdin is not a terminal")
				}
				if vals.Type == "" {
					vals.Type = domain.TypeTask
				}
				if vals.State == "" {
					vals.State = domain.StateNew
				}
				if err := newItemForm(&vals).Run(); err != nil {
					return err
				}
			}
			if vals.Type != "" && !domain.ValidWorkItemTypes[vals.Type] {
				return fmt.Errorf("unknown work item type %q", vals.Type)
			}

			fields := vals.fields(itemFormValues{})
			if parent > 0 {
				fields.ParentID = &parent
			}
			item, err := app.Items.Create(context.Background(), projectID, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s #%d %s\n", item.Type, item.ID, formatter.Bold(item.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	cmd.Flags().StringVar(&vals.Title, "title", "", "Title (omit to fill the form)")
	cmd.Flags().StringVar(&vals.Type, "type", domain.TypeTask, "Work item type")
	cmd.Flags().StringVar(&vals.AssignedTo, "assigned", "", "Assignee")
	cmd.Flags().StringVar(&vals.Planned, "planned", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&vals.Target, "target", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&vals.Estimate, "estimate", "", "Original estimate in hours")
	cmd.Flags().StringVar(&vals.Tags, "tags", "", "Comma separated tags")
	cmd.Flags().IntVar(&parent, "parent", 0, "Parent work item id")
	return cmd
}

func newItemEditCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a work item via the form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("edit requires an interactive terminal")
			}
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			item, err := app.Items.Get(ctx, projectID, id)
			if err != nil {
				return err
			}

			prev := itemFormValuesFrom(item)
			vals := prev
			if err := newItemForm(&vals).Run(); err != nil {
				return err
			}

			updated, err := app.Items.Update(ctx, projectID, id, vals.fields(prev))
			if err != nil {
				return err
			}
			fmt.Printf("Updated #%d %s\n", updated.ID, formatter.Bold(updated.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	return cmd
}

func newItemCommentCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Add a comment to a work item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")

			if _, err := app.Items.Comment(context.Background(), projectID, id, text); err != nil {
				return err
			}
			fmt.Printf("Commented on #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	return cmd
}

func newItemDeleteCmd(app *App) *cobra.Command {
	var project string
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProject(app, project)
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			if !force {
				if !app.IsInteractive() {
					return fmt.Errorf("pass --force to delete without confirmation")
				}
				confirmed := false
				form := huhConfirm(fmt.Sprintf("Delete work item #%d?", id), &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Aborted."))
					return nil
				}
			}

			if err := app.Items.Delete(context.Background(), projectID, id); err != nil {
				return err
			}
			fmt.Printf("Deleted #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}
