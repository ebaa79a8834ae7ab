package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
	"github.com/alexanderramin/estimate/internal/service"
)

func newJobTypeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobtype",
		Aliases: []string{"jt"},
		Short:   "Manage job types and their monthly rates",
	}

	cmd.AddCommand(
		newJobTypeListCmd(app),
		newJobTypeAddCmd(app),
		newJobTypeSetCmd(app),
		newJobTypeRemoveCmd(app),
	)

	return cmd
}

func newJobTypeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List job types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			if len(settings.JobTypes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No job types defined.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatJobTypeList(settings.JobTypes))
			return nil
		},
	}
}

func newJobTypeAddCmd(app *App) *cobra.Command {
	var rate quantityValue

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a job type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jt, err := app.Settings.AddJobType(cmd.Context(), args[0], float64(rate))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added job type %s at %s/month",
				formatter.Bold(jt.Name), estimate.FormatCurrency(jt.MonthlyRate))))
			return nil
		},
	}

	cmd.Flags().VarP(&rate, "rate", "r", "Monthly rate, e.g. 800000 or ￥800,000")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func newJobTypeSetCmd(app *App) *cobra.Command {
	var name string
	var rate quantityValue

	cmd := &cobra.Command{
		Use:   "set JOBTYPE",
		Short: "Rename a job type or change its rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := jobTypeArg(cmd, app, args[0])
			if err != nil {
				return err
			}

			var patch service.JobTypePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("rate") {
				r := float64(rate)
				patch.MonthlyRate = &r
			}
			if patch == (service.JobTypePatch{}) {
				return errors.New("nothing to change: pass --name or --rate")
			}

			jt, err := app.Settings.UpdateJobType(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated job type %s at %s/month",
				formatter.Bold(jt.Name), estimate.FormatCurrency(jt.MonthlyRate))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().VarP(&rate, "rate", "r", "New monthly rate")

	return cmd
}

func newJobTypeRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove JOBTYPE",
		Short: "Remove a job type; items using it keep their reference and cost nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := jobTypeArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			name := domain.FindJobType(settings.JobTypes, id).Name

			ok, err := confirm(cmd, app, fmt.Sprintf("Remove job type %q?", name), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			usage, err := app.Settings.RemoveJobType(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success("Removed job type "+formatter.Bold(name)))
			if usage.WorkItems > 0 || usage.TemplateItems > 0 {
				fmt.Fprintln(out, formatter.Warning(fmt.Sprintf(
					"%d work item(s) and %d template item(s) still reference it and are now priced at %s",
					usage.WorkItems, usage.TemplateItems, estimate.FormatCurrency(0))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func jobTypeArg(cmd *cobra.Command, app *App, input string) (string, error) {
	settings, err := app.Settings.Get(cmd.Context())
	if err != nil {
		return "", err
	}
	return resolveJobTypeID(settings.JobTypes, input)
}
