package weather

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchRequest describes one dashboard search. Exactly one of Query or
// Coords must be set; Coords carries a device-geolocation fix forwarded by
// the caller.
type SearchRequest struct {
	Query   string
	Coords  *Coordinates
	Units   Units
	OneCall bool
	Options ViewOptions
}

// Service orchestrates a search: resolve the location, fetch from the
// provider, and return a single combined view or a single combined failure.
//
// A new search supersedes any in-flight one: the previous search's context
// is cancelled and, if it still completes, its result is discarded with
// ErrSuperseded instead of racing the caller's state.
type Service struct {
	provider Provider
	resolver *Resolver
	log      *zap.SugaredLogger

	gen    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewService creates a Service.
func NewService(provider Provider, geo Geocoder, log *zap.SugaredLogger) *Service {
	return &Service{
		provider: provider,
		resolver: NewResolver(geo),
		log:      log,
	}
}

// Search resolves the requested location and produces a unified weather
// view in the requested unit system.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*View, error) {
	if !req.Units.Valid() {
		req.Units = UnitsMetric
	}

	searchID := uuid.NewString()
	ctx, gen := s.begin(ctx)
	defer s.finish(gen)

	s.log.Debugw("search started", "search_id", searchID, "query", req.Query, "units", req.Units)

	loc, err := s.resolve(ctx, req)
	if err != nil {
		s.log.Infow("location resolution failed", "search_id", searchID, "error", err)
		return nil, err
	}

	coords := Coordinates{Lat: loc.Lat, Lon: loc.Lon}

	var view *View
	if req.OneCall {
		view, err = s.provider.OneCall(ctx, coords, req.Units, req.Options)
	} else {
		view, err = s.provider.Snapshot(ctx, coords, req.Units, req.Options)
	}
	if err != nil {
		s.log.Infow("fetch failed", "search_id", searchID, "location", loc.Name, "error", err)
		return nil, err
	}

	if s.gen.Load() != gen {
		s.log.Debugw("stale search discarded", "search_id", searchID)
		return nil, ErrSuperseded
	}

	view.Location = loc
	view.Units = req.Units
	return view, nil
}

func (s *Service) resolve(ctx context.Context, req SearchRequest) (Location, error) {
	if req.Coords != nil {
		return s.resolver.ResolveCoords(ctx, *req.Coords)
	}
	return s.resolver.ResolveQuery(ctx, req.Query)
}

// begin registers a new search generation and cancels the previous
// in-flight search, returning a cancellable child context for this one.
func (s *Service) begin(ctx context.Context) (context.Context, uint64) {
	gen := s.gen.Add(1)
	child, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	prev := s.cancel
	s.cancel = cancel
	s.mu.Unlock()

	if prev != nil {
		prev()
	}
	return child, gen
}

func (s *Service) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only the latest search owns the stored cancel func.
	if s.gen.Load() == gen && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
