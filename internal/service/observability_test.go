package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCaseObserver_ReportsOutcome(t *testing.T) {
	projects, settings := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewProjectService(projects, settings, obs)

	p, err := svc.Create(ctx, NewProjectInput{Name: "Portal"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewProjectInput{Name: ""})
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, p.ID, obs.events[0].Fields["project_id"])

	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, ErrValidation)
}

func TestUseCaseObserver_NilFallsBackToNoop(t *testing.T) {
	projects, settings := setupRepos(t)
	svc := NewProjectService(projects, settings, nil)

	_, err := svc.Create(context.Background(), NewProjectInput{Name: "Portal"})
	assert.NoError(t, err)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "apply-template",
		Success: true,
		Fields:  map[string]any{"added": 7},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "save-project",
		Err:  ErrValidation,
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var ok, failed map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &ok))
	require.NoError(t, json.Unmarshal(lines[1], &failed))

	assert.Equal(t, "debug", ok["level"])
	assert.Equal(t, "apply-template", ok["use_case"])
	assert.Equal(t, float64(7), ok["added"])
	assert.Equal(t, "service_use_case", ok["message"])

	assert.Equal(t, "error", failed["level"])
	assert.Equal(t, "invalid input", failed["error"])
}
