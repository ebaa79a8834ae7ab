package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
	"github.com/alexanderramin/estimate/internal/importer"
	"github.com/alexanderramin/estimate/internal/service"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage reusable work item templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateAddCmd(app),
		newTemplateRenameCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateAddItemCmd(app),
		newTemplateSetItemCmd(app),
		newTemplateRemoveItemCmd(app),
		newTemplateImportCmd(app),
		newTemplateExportCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			if len(settings.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(settings.Templates, settings.JobTypes))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show a template's items priced at the current rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveTemplateID(settings.Templates, args[0])
			if err != nil {
				return err
			}
			t := domain.FindTemplate(settings.Templates, id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(*t, settings.JobTypes))
			return nil
		},
	}
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var fromProject string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a template, empty or from a project's work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var t *domain.Template
			var err error
			if fromProject != "" {
				projectID, rerr := resolveProjectID(ctx, app, fromProject)
				if rerr != nil {
					return rerr
				}
				t, err = app.Templates.FromProject(ctx, projectID, args[0])
			} else {
				t, err = app.Templates.Save(ctx, domain.Template{Name: args[0], WorkItems: []domain.TemplateItem{}})
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created template %s with %d item(s)",
				formatter.Bold(t.Name), len(t.WorkItems))))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromProject, "from-project", "", "Copy work items from this project")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove TEMPLATE",
		Short: "Remove a template; projects created from it are unaffected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templates, err := app.Templates.List(ctx)
			if err != nil {
				return err
			}
			id, err := resolveTemplateID(templates, args[0])
			if err != nil {
				return err
			}
			name := domain.FindTemplate(templates, id).Name

			ok, err := confirm(cmd, app, fmt.Sprintf("Remove template %q?", name), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Templates.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed template "+formatter.Bold(name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newTemplateImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import templates from a YAML file; matching ids are replaced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := importer.LoadTemplateFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateTemplateFile(doc); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleRed.Render("  "+e.Error()))
				}
				return fmt.Errorf("%s: %d validation error(s)", args[0], len(errs))
			}

			result, err := app.Templates.Import(cmd.Context(), doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Imported %d new and %d replaced template(s)", result.Added, result.Replaced)))
			for _, w := range result.Warnings {
				fmt.Fprintln(out, formatter.Warning(w))
			}
			return nil
		},
	}
}

func newTemplateExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [TEMPLATE...]",
		Short: "Write templates as YAML (all templates when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var ids []string
			if len(args) > 0 {
				templates, err := app.Templates.List(ctx)
				if err != nil {
					return err
				}
				for _, ref := range args {
					id, err := resolveTemplateID(templates, ref)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
			}

			doc, err := app.Templates.Export(ctx, ids)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return doc.Write(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := doc.Write(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Wrote %d template(s) to %s", len(doc.Templates), out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

// templateArg resolves a template reference against the current settings
// and returns a copy of it.
func templateArg(cmd *cobra.Command, app *App, input string) (*domain.Template, error) {
	templates, err := app.Templates.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	id, err := resolveTemplateID(templates, input)
	if err != nil {
		return nil, err
	}
	t := domain.FindTemplate(templates, id).Clone()
	return &t, nil
}

func newTemplateRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename TEMPLATE NAME",
		Short: "Rename a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := templateArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Templates.Rename(cmd.Context(), t.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Renamed template to "+formatter.Bold(renamed.Name)))
			return nil
		},
	}
}

func newTemplateAddItemCmd(app *App) *cobra.Command {
	var jobTypeRef string
	var effort quantityValue

	cmd := &cobra.Command{
		Use:   "add-item TEMPLATE NAME",
		Short: "Append an item to a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := templateArg(cmd, app, args[0])
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

			item, err := app.Templates.AddItem(ctx, t.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s (%s) to %s",
				formatter.Bold(item.Name), estimate.FormatEffort(item.ManMonths), t.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobTypeRef, "job-type", "j", "", "Job type id or name (default: first job type)")
	cmd.Flags().VarP(&effort, "effort", "e", "Effort in man-months, e.g. 1.5")

	return cmd
}

func newTemplateSetItemCmd(app *App) *cobra.Command {
	var name, jobTypeRef string
	var effort quantityValue

	cmd := &cobra.Command{
		Use:   "set-item TEMPLATE ITEM",
		Short: "Edit a template item (ITEM is its # from 'template show')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := templateArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			index, err := resolveTemplateItemIndex(t, args[1])
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

			item, err := app.Templates.UpdateItem(ctx, t.ID, index, patch)
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

func newTemplateRemoveItemCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item TEMPLATE ITEM",
		Short: "Remove an item from a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := templateArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			index, err := resolveTemplateItemIndex(t, args[1])
			if err != nil {
				return err
			}
			if err := app.Templates.RemoveItem(cmd.Context(), t.ID, index); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed "+formatter.Bold(t.WorkItems[index].Name)))
			return nil
		},
	}
}
