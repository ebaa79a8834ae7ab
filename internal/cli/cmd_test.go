package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/export"
	"github.com/alexanderramin/estimate/internal/kv"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/alexanderramin/estimate/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory store for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	store := kv.NewMemoryStore()
	projects := repository.NewKVProjectRepo(store)
	settings := repository.NewKVSettingsRepo(store)

	projectSvc := service.NewProjectService(projects, settings)
	settingsSvc := service.NewSettingsService(settings, projects)
	return &App{
		Projects:  projectSvc,
		Settings:  settingsSvc,
		Templates: service.NewTemplateService(settingsSvc, projects),
		Export:    service.NewExportService(projectSvc, export.Options{}),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr without ANSI codes.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

// seedProject creates a project from the default template and returns it.
func seedProject(t *testing.T, app *App, name string) *domain.EstimateProject {
	t.Helper()
	p, err := app.Projects.Create(context.Background(), service.NewProjectInput{Name: name, TemplateID: "1"})
	require.NoError(t, err)
	return p
}

func TestProjectNewAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")

	out, err = executeCmd(t, app, "project", "new", "Portal", "--customer", "Acme", "--template", "標準Webアプリケーション開発")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Portal")
	assert.Contains(t, out, "with 7 item(s)")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "￥6,550,000")
}

func TestProjectNew_RequiresNameWithoutTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "new")
	assert.EqualError(t, err, "project name is required")

	_, err = executeCmd(t, app, "project", "new", "  ")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestProjectShow(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")

	out, err := executeCmd(t, app, "project", "show", p.DisplayID())
	require.NoError(t, err)
	assert.Contains(t, out, "要件定義")
	assert.Contains(t, out, "8.5人月")
	assert.Contains(t, out, "￥6,550,000")

	// Exact names resolve too.
	_, err = executeCmd(t, app, "project", "show", "portal")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "project", "show", "nope")
	assert.ErrorContains(t, err, "project not found")
}

func TestProjectItems(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, err := app.Projects.Create(ctx, service.NewProjectInput{Name: "Portal"})
	require.NoError(t, err)

	out, err := executeCmd(t, app, "project", "add-item", p.ID, "Build", "--job-type", "プログラマー", "--effort", "1.5人月")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Build (1.5人月)")

	out, err = executeCmd(t, app, "project", "show", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "￥1,050,000")

	_, err = executeCmd(t, app, "project", "set-item", p.ID, "1", "--effort", "2", "--job-type", "2")
	require.NoError(t, err)
	stored, err := app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.WorkItems, 1)
	assert.Equal(t, 2.0, stored.WorkItems[0].ManMonths)
	assert.Equal(t, "2", stored.WorkItems[0].JobTypeID)

	_, err = executeCmd(t, app, "project", "set-item", p.ID, "1")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = executeCmd(t, app, "project", "set-item", p.ID, "5", "--effort", "1")
	assert.ErrorContains(t, err, "work item #5 not found")

	out, err = executeCmd(t, app, "project", "remove-item", p.ID, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Build")

	stored, err = app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.WorkItems)
}

func TestProjectAddItem_BadEffort(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")

	_, err := executeCmd(t, app, "project", "add-item", p.ID, "X", "--effort", "lots")
	assert.Error(t, err)
}

func TestProjectRenameAndApplyTemplate(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")

	_, err := executeCmd(t, app, "project", "rename", p.ID, "Portal v2", "--customer", "Globex")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "project", "apply-template", p.ID, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 7 item(s)")

	stored, err := app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", stored.Name)
	assert.Equal(t, "Globex", stored.CustomerName)
	assert.Len(t, stored.WorkItems, 14)
}

func TestProjectDelete(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")

	_, err := executeCmd(t, app, "project", "delete", p.ID)
	assert.ErrorContains(t, err, "--yes")

	out, err := executeCmd(t, app, "project", "delete", p.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted: Portal")

	list, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectExport(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "portal.xlsx")
	_, err := executeCmd(t, app, "project", "export", p.ID, "--out", xlsx)
	require.NoError(t, err)
	data, err := os.ReadFile(xlsx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	forced := filepath.Join(dir, "portal.out")
	_, err = executeCmd(t, app, "project", "export", p.ID, "--out", forced, "--format", "pdf")
	require.NoError(t, err)
	data, err = os.ReadFile(forced)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = executeCmd(t, app, "project", "export", p.ID, "--out", filepath.Join(dir, "portal.csv"))
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestJobTypeCommands(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "Portal")

	out, err := executeCmd(t, app, "jobtype", "add", "デザイナー", "--rate", "￥800,000")
	require.NoError(t, err)
	assert.Contains(t, out, "Added job type デザイナー at ￥800,000/month")

	_, err = executeCmd(t, app, "jobtype", "set", "デザイナー", "--rate", "850000")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "jobtype", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "￥850,000")

	out, err = executeCmd(t, app, "jobtype", "remove", "システムエンジニア", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "2 work item(s) and 2 template item(s) still reference it")

	_, err = executeCmd(t, app, "jobtype", "set", "システムエンジニア", "--rate", "1")
	assert.ErrorContains(t, err, "job type not found")
}

func TestTemplateCommands(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "Portal")
	dir := t.TempDir()

	out, err := executeCmd(t, app, "template", "add", "Portal pattern", "--from-project", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "with 7 item(s)")

	out, err = executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal pattern")

	out, err = executeCmd(t, app, "template", "show", "portal pattern")
	require.NoError(t, err)
	assert.Contains(t, out, "￥6,550,000")

	yamlPath := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`templates:
  - name: Support
    items:
      - name: Helpdesk
        job_type: テスター
        man_months: 1
      - name: Audit
        job_type: auditor
        man_months: 0.5
`), 0o644))
	out, err = executeCmd(t, app, "template", "import", yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 new and 0 replaced")
	assert.Contains(t, out, `unknown job type "auditor"`)

	out, err = executeCmd(t, app, "template", "export", "Support")
	require.NoError(t, err)
	assert.Contains(t, out, "templates:")
	assert.Contains(t, out, "Helpdesk")
	assert.NotContains(t, out, "要件定義")

	exported := filepath.Join(dir, "all.yaml")
	_, err = executeCmd(t, app, "template", "export", "--out", exported)
	require.NoError(t, err)
	doc, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "要件定義")

	_, err = executeCmd(t, app, "template", "remove", "Support", "--yes")
	require.NoError(t, err)
	templates, err := app.Templates.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestTemplateImport_InvalidFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - name: ''\n    items: []\n"), 0o644))

	out, err := executeCmd(t, app, "template", "import", path)
	assert.ErrorContains(t, err, "validation error")
	assert.Contains(t, out, "name")
}

func TestSettingsCommands(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults")

	_, err = executeCmd(t, app, "jobtype", "add", "Designer", "--rate", "1")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Designer")

	_, err = executeCmd(t, app, "settings", "reset")
	assert.ErrorContains(t, err, "--yes")

	_, err = executeCmd(t, app, "settings", "reset", "-y")
	require.NoError(t, err)
	s, err := app.Settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)
}

func TestRootCmd_InitReceivesFlags(t *testing.T) {
	app := testApp(t)
	var workspace string
	app.Init = func(cmd *cobra.Command) error {
		var err error
		workspace, err = cmd.Flags().GetString("workspace")
		return err
	}

	_, err := executeCmd(t, app, "--workspace", "acme", "settings", "show")
	require.NoError(t, err)
	assert.Equal(t, "acme", workspace)
}

func TestCorruptStoreSurfaces(t *testing.T) {
	store := testutil.CorruptStore(repository.ProjectsKey, "[{")
	projects := repository.NewKVProjectRepo(store)
	settings := repository.NewKVSettingsRepo(store)
	app := &App{
		Projects: service.NewProjectService(projects, settings),
		Settings: service.NewSettingsService(settings, projects),
	}

	_, err := executeCmd(t, app, "project", "list")
	assert.ErrorIs(t, err, repository.ErrCorruptRecord)
}

func TestTemplateItemCommands(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "template", "add", "Support")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "template", "add-item", "Support", "Helpdesk", "--effort", "1人月")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Helpdesk (1.0人月) to Support")

	_, err = executeCmd(t, app, "template", "add-item", "Support", "Audit", "-j", "テスター", "-e", "0.5")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "template", "show", "Support")
	require.NoError(t, err)
	// 1.0 at 1,200,000 plus 0.5 at 600,000
	assert.Contains(t, out, "￥1,500,000")

	_, err = executeCmd(t, app, "template", "set-item", "Support", "1", "--name", "Service desk", "--job-type", "プログラマー")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "template", "set-item", "Support", "2")
	assert.ErrorContains(t, err, "nothing to change")
	_, err = executeCmd(t, app, "template", "set-item", "Support", "3", "-e", "1")
	assert.ErrorContains(t, err, "template item #3 not found")
	_, err = executeCmd(t, app, "template", "remove-item", "Support", "abc")
	assert.ErrorContains(t, err, "must be a number")

	out, err = executeCmd(t, app, "template", "remove-item", "Support", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Audit")

	out, err = executeCmd(t, app, "template", "rename", "Support", "Support desk")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed template to Support desk")

	templates, err := app.Templates.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Support desk", templates[1].Name)
	assert.Equal(t, []domain.TemplateItem{{Name: "Service desk", JobTypeID: "3", ManMonths: 1}}, templates[1].WorkItems)

	// The filled template seeds new projects.
	out, err = executeCmd(t, app, "project", "new", "Ops", "--template", "Support desk")
	require.NoError(t, err)
	assert.Contains(t, out, "with 1 item(s)")
}
