package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/service"
)

// estimateHuhTheme returns a custom huh theme using the Gruvbox palette.
func estimateHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(estimateHuhTheme()).WithShowHelp(false)
}

// wizardNewProject asks for the fields of a new project. The template
// select is skipped when there are no templates.
func wizardNewProject(templates []domain.Template, in *service.NewProjectInput) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Project name").
			Value(&in.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Customer").
			Description("Optional").
			Value(&in.CustomerName),
	}
	if len(templates) > 0 {
		options := make([]huh.Option[string], 0, len(templates)+1)
		options = append(options, huh.NewOption("Start empty", ""))
		for _, t := range templates {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%d items)", t.Name, len(t.WorkItems)), t.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Start from template").
			Options(options...).
			Value(&in.TemplateID))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(estimateHuhTheme()).
		WithShowHelp(false)
}

// runForm runs form on the command's streams. An aborted form reports false.
func runForm(cmd *cobra.Command, form *huh.Form) (bool, error) {
	form = form.WithProgramOptions(
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if err := form.RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// confirm asks before a destructive action. yes skips the prompt. Without a
// terminal the action is refused rather than assumed.
func confirm(cmd *cobra.Command, app *App, prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("%s: rerun with --yes to confirm", strings.TrimSuffix(prompt, "?"))
	}
	var ok bool
	completed, err := runForm(cmd, wizardConfirm(prompt, &ok))
	if err != nil {
		return false, err
	}
	return completed && ok, nil
}
