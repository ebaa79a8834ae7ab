package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/importer"
	"github.com/alexanderramin/estimate/internal/testutil"
)

func setupTemplateService(t *testing.T) (TemplateService, SettingsService, ProjectService) {
	t.Helper()
	projects, settings := setupRepos(t)
	settingsSvc := NewSettingsService(settings, projects)
	return NewTemplateService(settingsSvc, projects), settingsSvc, NewProjectService(projects, settings)
}

func TestTemplateService_SaveAndRemove(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, domain.Template{
		Name:      "Maintenance",
		WorkItems: []domain.TemplateItem{{Name: "Patch", JobTypeID: "3", ManMonths: 0.5}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "標準Webアプリケーション開発", list[0].Name)
	assert.Equal(t, "Maintenance", list[1].Name)

	created.Name = "Maintenance v2"
	_, err = svc.Save(ctx, *created)
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maintenance v2", got.Name)

	_, err = svc.Save(ctx, domain.Template{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Remove(ctx, created.ID))
	assert.ErrorIs(t, svc.Remove(ctx, created.ID), ErrTemplateNotFound)
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateService_FromProject(t *testing.T) {
	svc, _, projectSvc := setupTemplateService(t)
	ctx := context.Background()

	p, err := projectSvc.Create(ctx, NewProjectInput{Name: "Portal"})
	require.NoError(t, err)
	_, err = projectSvc.AddWorkItem(ctx, p.ID, WorkItemInput{Name: "Design", JobTypeID: "2", ManMonths: 1})
	require.NoError(t, err)
	_, err = projectSvc.AddWorkItem(ctx, p.ID, WorkItemInput{Name: "Build", JobTypeID: "3", ManMonths: 2})
	require.NoError(t, err)

	tmpl, err := svc.FromProject(ctx, p.ID, "Portal pattern")
	require.NoError(t, err)
	assert.Equal(t, []domain.TemplateItem{
		{Name: "Design", JobTypeID: "2", ManMonths: 1},
		{Name: "Build", JobTypeID: "3", ManMonths: 2},
	}, tmpl.WorkItems)

	// Later project edits do not leak into the template.
	require.NoError(t, projectSvc.Delete(ctx, p.ID))
	stored, err := svc.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Len(t, stored.WorkItems, 2)
}

func TestTemplateService_Import(t *testing.T) {
	svc, settingsSvc, _ := setupTemplateService(t)
	ctx := context.Background()

	doc, err := importer.ParseTemplateFile([]byte(`templates:
  - id: "1"
    name: Standard (revised)
    items:
      - name: 要件定義
        job_type: プロジェクトマネージャー
        man_months: 1
  - name: Data migration
    items:
      - name: Mapping
        job_type: dba
        man_months: 0.5
`))
	require.NoError(t, err)

	result, err := svc.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Replaced)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"dba"`)

	s, err := settingsSvc.Get(ctx)
	require.NoError(t, err)
	require.Len(t, s.Templates, 2)
	assert.Equal(t, "Standard (revised)", s.Templates[0].Name)
	assert.Equal(t, "1", s.Templates[0].WorkItems[0].JobTypeID)
	assert.Equal(t, "dba", s.Templates[1].WorkItems[0].JobTypeID)
}

func TestTemplateService_Import_InvalidFileWritesNothing(t *testing.T) {
	svc, settingsSvc, _ := setupTemplateService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, &importer.TemplateFile{})
	assert.ErrorIs(t, err, ErrValidation)

	customized, err := settingsSvc.IsCustomized(ctx)
	require.NoError(t, err)
	assert.False(t, customized)
}

func TestTemplateService_Export(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	ctx := context.Background()

	extra := testutil.NewTestTemplate("Extra", testutil.NewTestWorkItem("QA", "4", 1))
	_, err := svc.Save(ctx, extra)
	require.NoError(t, err)

	all, err := svc.Export(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Templates, 2)

	one, err := svc.Export(ctx, []string{extra.ID})
	require.NoError(t, err)
	require.Len(t, one.Templates, 1)
	assert.Equal(t, "Extra", one.Templates[0].Name)
	assert.Equal(t, "4", one.Templates[0].Items[0].JobType)

	_, err = svc.Export(ctx, []string{"missing"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateService_EditItems(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, domain.Template{Name: "Blank", WorkItems: []domain.TemplateItem{}})
	require.NoError(t, err)

	added, err := svc.AddItem(ctx, created.ID, WorkItemInput{Name: "Kickoff", ManMonths: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "1", added.JobTypeID, "defaults to the first job type")

	_, err = svc.AddItem(ctx, created.ID, WorkItemInput{Name: "Build", JobTypeID: "3", ManMonths: -1})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.WorkItems, 2)
	assert.Zero(t, got.WorkItems[1].ManMonths)

	name, jobType, effort := "Build & test", "4", 2.0
	updated, err := svc.UpdateItem(ctx, created.ID, 1, WorkItemPatch{Name: &name, JobTypeID: &jobType, ManMonths: &effort})
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateItem{Name: "Build & test", JobTypeID: "4", ManMonths: 2}, *updated)

	require.NoError(t, svc.RemoveItem(ctx, created.ID, 0))
	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.TemplateItem{{Name: "Build & test", JobTypeID: "4", ManMonths: 2}}, got.WorkItems)

	_, err = svc.UpdateItem(ctx, created.ID, 1, WorkItemPatch{Name: &name})
	assert.ErrorIs(t, err, ErrWorkItemNotFound)
	assert.ErrorIs(t, svc.RemoveItem(ctx, created.ID, -1), ErrWorkItemNotFound)
	_, err = svc.AddItem(ctx, "missing", WorkItemInput{Name: "X"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateService_Rename(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	ctx := context.Background()

	renamed, err := svc.Rename(ctx, "1", "  Web  ")
	require.NoError(t, err)
	assert.Equal(t, "Web", renamed.Name)
	assert.Len(t, renamed.WorkItems, 7)

	_, err = svc.Rename(ctx, "1", " ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Rename(ctx, "missing", "X")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateService_SaveLeavesCallerItemsAlone(t *testing.T) {
	svc, settingsSvc, _ := setupTemplateService(t)
	ctx := context.Background()

	items := []domain.TemplateItem{{Name: "Refund", JobTypeID: "1", ManMonths: -3}}
	saved, err := svc.Save(ctx, domain.Template{Name: "Credit", WorkItems: items})
	require.NoError(t, err)
	assert.Zero(t, saved.WorkItems[0].ManMonths)
	assert.Equal(t, -3.0, items[0].ManMonths)

	s := domain.Settings{
		JobTypes:  []domain.JobType{{ID: "a", Name: "A", MonthlyRate: -1}},
		Templates: []domain.Template{{ID: "t", Name: "T", WorkItems: items}},
	}
	require.NoError(t, settingsSvc.Save(ctx, s))
	assert.Equal(t, -1.0, s.JobTypes[0].MonthlyRate)
	assert.Equal(t, -3.0, s.Templates[0].WorkItems[0].ManMonths)
}

func TestTemplateService_Import_RejectsSpacedDuplicateIDs(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, &importer.TemplateFile{Templates: []importer.TemplateImport{
		{ID: "x", Name: "A", Items: []importer.ItemImport{}},
		{ID: " x", Name: "B", Items: []importer.ItemImport{}},
	}})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
