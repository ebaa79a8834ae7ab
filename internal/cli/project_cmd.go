package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/estimate"
	"github.com/alexanderramin/estimate/internal/export"
	"github.com/alexanderramin/estimate/internal/service"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage estimate projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectNewCmd(app),
		newProjectShowCmd(app),
		newProjectRenameCmd(app),
		newProjectDeleteCmd(app),
		newProjectAddItemCmd(app),
		newProjectSetItemCmd(app),
		newProjectRemoveItemCmd(app),
		newProjectApplyTemplateCmd(app),
		newProjectExportCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with their totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			entries := make([]formatter.ProjectListEntry, 0, len(projects))
			for _, p := range projects {
				entries = append(entries, formatter.ProjectListEntry{
					Project: p,
					Summary: estimate.Summarize(p.WorkItems, settings.JobTypes),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(entries, time.Now()))
			return nil
		},
	}
}

func newProjectNewCmd(app *App) *cobra.Command {
	var in service.NewProjectInput
	var templateRef string

	cmd := &cobra.Command{
		Use:   "new [NAME]",
		Short: "Create a project, optionally seeded from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templates, err := app.Templates.List(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				in.Name = args[0]
			} else if app.interactive() {
				completed, err := runForm(cmd, wizardNewProject(templates, &in))
				if err != nil {
					return err
				}
				if !completed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			} else {
				return errors.New("project name is required")
			}

			if templateRef != "" {
				if in.TemplateID, err = resolveTemplateID(templates, templateRef); err != nil {
					return err
				}
			}

			p, err := app.Projects.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created project %s [%s] with %d item(s)",
				formatter.Bold(p.Name), p.DisplayID(), len(p.WorkItems))))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.CustomerName, "customer", "", "Customer name")
	cmd.Flags().StringVarP(&templateRef, "template", "t", "", "Template id or name to copy work items from")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project's work items, costs and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			est, err := app.Projects.Estimate(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(est.Project, est.JobTypes, est.Summary))
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "rename PROJECT NAME",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			patch := service.ProjectPatch{Name: &args[1]}
			if cmd.Flags().Changed("customer") {
				patch.CustomerName = &customer
			}
			p, err := app.Projects.Update(ctx, projectID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Renamed project to "+formatter.Bold(p.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Also change the customer name")

	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete PROJECT",
		Aliases: []string{"rm"},
		Short:   "Delete a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			ok, err := confirm(cmd, app, fmt.Sprintf("Delete project %q?", p.Name), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted: "+formatter.Bold(p.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newProjectAddItemCmd(app *App) *cobra.Command {
	var jobTypeRef string
	var effort quantityValue

	cmd := &cobra.Command{
		Use:   "add-item PROJECT NAME",
		Short: "Add a work item to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			in := service.WorkItemInput{Name: args[1], ManMonths: float64(effort)}
			if jobTypeRef != "" {
				settings, err := app.Settings.Get(ctx)
				if err != nil {
					return err
				}
				if in.JobTypeID, err = resolveJobTypeID(settings.JobTypes, jobTypeRef); err != nil {
					return err
				}
			}

			item, err := app.Projects.AddWorkItem(ctx, projectID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s (%s)",
				formatter.Bold(item.Name), estimate.FormatEffort(item.ManMonths))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobTypeRef, "job-type", "j", "", "Job type id or name (default: first job type)")
	cmd.Flags().VarP(&effort, "effort", "e", "Effort in man-months, e.g. 1.5")

	return cmd
}

func newProjectSetItemCmd(app *App) *cobra.Command {
	var name, jobTypeRef string
	var effort quantityValue

	cmd := &cobra.Command{
		Use:   "set-item PROJECT ITEM",
		Short: "Edit a work item (ITEM is its # from 'project show' or its id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			itemID, err := resolveWorkItemID(p, args[1])
			if err != nil {
				return err
			}

			var patch service.WorkItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("effort") {
				mm := float64(effort)
				patch.ManMonths = &mm
			}
			if cmd.Flags().Changed("job-type") {
				settings, err := app.Settings.Get(ctx)
				if err != nil {
					return err
				}
				id, err := resolveJobTypeID(settings.JobTypes, jobTypeRef)
				if err != nil {
					return err
				}
				patch.JobTypeID = &id
			}
			if patch == (service.WorkItemPatch{}) {
				return errors.New("nothing to change: pass --name, --job-type or --effort")
			}

			item, err := app.Projects.UpdateWorkItem(ctx, projectID, itemID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated %s (%s)",
				formatter.Bold(item.Name), estimate.FormatEffort(item.ManMonths))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New item name")
	cmd.Flags().StringVarP(&jobTypeRef, "job-type", "j", "", "Job type id or name")
	cmd.Flags().VarP(&effort, "effort", "e", "Effort in man-months")

	return cmd
}

func newProjectRemoveItemCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item PROJECT ITEM",
		Short: "Remove a work item from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			itemID, err := resolveWorkItemID(p, args[1])
			if err != nil {
				return err
			}
			name := p.WorkItems[p.FindWorkItem(itemID)].Name

			if err := app.Projects.RemoveWorkItem(ctx, projectID, itemID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed "+formatter.Bold(name)))
			return nil
		},
	}
}

func newProjectApplyTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-template PROJECT TEMPLATE",
		Short: "Append copies of a template's work items to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			templates, err := app.Templates.List(ctx)
			if err != nil {
				return err
			}
			templateID, err := resolveTemplateID(templates, args[1])
			if err != nil {
				return err
			}

			added, err := app.Projects.ApplyTemplate(ctx, projectID, templateID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %d item(s) from template", len(added))))
			return nil
		},
	}
}

func newProjectExportCmd(app *App) *cobra.Command {
	var out, formatStr string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write the estimate as an .xlsx spreadsheet or .pdf document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var format export.Format
			if formatStr != "" {
				format, err = export.ParseFormat(formatStr)
			} else {
				format, err = export.FormatFromPath(out)
			}
			if err != nil {
				return err
			}

			data, err := app.Export.Render(ctx, projectID, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; the extension picks the format")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "Force the format: xlsx or pdf")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
