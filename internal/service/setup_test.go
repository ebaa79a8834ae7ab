package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/testutil"
)

func setupRepos(t *testing.T) (repository.ProjectRepo, repository.SettingsRepo) {
	t.Helper()
	store := testutil.NewTestStore(t)
	return repository.NewKVProjectRepo(store), repository.NewKVSettingsRepo(store)
}

// testClock returns a clock that starts at start and advances a minute per call.
func testClock(start time.Time) func() time.Time {
	current := start.Add(-time.Minute)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.events = append(o.events, event)
}
