package console

import (
	"context"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// Refresher is invoked after every mutating action.
type Refresher interface {
	Refresh(ctx context.Context)
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context)

// Refresh implements Refresher.
func (f RefreshFunc) Refresh(ctx context.Context) {
	f(ctx)
}

// StatsSync keeps the stats snapshot current. Failures are logged, never shown.
//
// Concurrent refreshes are not ordered: whichever response is applied last wins.
type StatsSync struct {
	backend service.AdminBackend
	view    StatsView
	diag    common.Diagnostics
	latest  *model.Stats
}

// Fetch loads stats from the backend without touching displayed state.
func (s *StatsSync) Fetch(ctx context.Context) (model.Stats, error) {
	return s.backend.Stats(ctx)
}

// Apply overwrites the displayed stats.
func (s *StatsSync) Apply(stats model.Stats) {
	s.latest = &stats
	if s.view != nil {
		s.view.ShowStats(stats)
	}
}

// Fail records a failed refresh for diagnostics only.
func (s *StatsSync) Fail(err error) {
	s.diag.Fault("StatsSync", "refresh", err)
}

// Refresh fetches and applies stats in one step.
func (s *StatsSync) Refresh(ctx context.Context) {
	stats, err := s.Fetch(ctx)
	if err != nil {
		s.Fail(err)
		return
	}
	s.Apply(stats)
}

// Latest returns the last applied stats.
func (s *StatsSync) Latest() (model.Stats, bool) {
	if s.latest == nil {
		return model.Stats{}, false
	}
	return *s.latest, true
}
