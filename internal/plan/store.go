package plan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/identity"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/logger"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

// RemoteStore is the authoritative per-user plan document. Writes
// overwrite the whole document (last-write-wins, no merge).
type RemoteStore interface {
	FetchPlan(ctx context.Context, userID string) (MealPlan, error)
	WritePlan(ctx context.Context, userID string, p MealPlan) error
}

// LocalCache is the on-device copy of the plan. ReadPlan returns nil for
// absent or unparseable data rather than an error.
type LocalCache interface {
	ReadPlan() (MealPlan, error)
	WritePlan(p MealPlan) error
}

// State is the lifecycle state of a store instance.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// PersistReport describes the outcome of one write-through. Both errors
// are nil on full success; RemoteAttempted is false for anonymous
// sessions.
type PersistReport struct {
	LocalErr        error
	RemoteAttempted bool
	RemoteErr       error
}

// Store owns the in-process meal plan and keeps the local cache and the
// remote document in sync with it.
//
// Mutating operations must be serialized by the caller. Each mutation
// applies in memory and recomputes markers before persistence is
// attempted, and persistence failure never rolls the mutation back: the
// in-memory plan stays authoritative for this process.
type Store struct {
	ids    identity.Provider
	remote RemoteStore
	cache  LocalCache

	plan    MealPlan
	markers Markers
	state   State

	onPersist func(PersistReport)
}

// NewStore creates a store over the given collaborators. Any collaborator
// may be nil; a nil identity provider behaves like an anonymous session.
func NewStore(ids identity.Provider, remote RemoteStore, cache LocalCache) *Store {
	return &Store{
		ids:     ids,
		remote:  remote,
		cache:   cache,
		plan:    MealPlan{},
		markers: Markers{},
		state:   StateUninitialized,
	}
}

// OnPersist registers a listener invoked after every write-through.
// Persistence errors are swallowed either way; the listener is how an
// embedding caller observes them.
func (s *Store) OnPersist(fn func(PersistReport)) {
	s.onPersist = fn
}

// State returns the store's lifecycle state.
func (s *Store) State() State {
	return s.state
}

func (s *Store) currentIdentity() *identity.Identity {
	if s.ids == nil {
		return nil
	}
	return s.ids.CurrentIdentity()
}

// Load populates the plan: remote document first when an identity exists,
// local cache otherwise. Remote failures fall through to the cache, and
// total absence of data yields an empty valid plan, so Load never fails.
// Calling Load again re-runs the same transitions idempotently.
func (s *Store) Load(ctx context.Context) MealPlan {
	s.state = StateLoading

	if id := s.currentIdentity(); id != nil && s.remote != nil {
		remotePlan, err := s.remote.FetchPlan(ctx, id.UserID)
		if err != nil {
			logger.Warn("remote plan fetch failed, falling back to local cache", "user", id.UserID, "error", err)
		} else if len(remotePlan) > 0 {
			s.adopt(remotePlan)
			return s.Snapshot()
		}
	}

	var cached MealPlan
	if s.cache != nil {
		var err error
		cached, err = s.cache.ReadPlan()
		if err != nil {
			logger.Warn("local cache read failed, starting from an empty plan", "error", err)
			cached = nil
		}
	}
	if cached == nil {
		cached = MealPlan{}
	}
	s.adopt(cached)
	return s.Snapshot()
}

// adopt installs a plan coming from a persistence layer. Decoded JSON can
// legally contain null days, so they are dropped here, at the one
// boundary untrusted data crosses; everything downstream may assume
// non-nil days.
func (s *Store) adopt(p MealPlan) {
	for key, day := range p {
		if day == nil {
			delete(p, key)
		}
	}
	s.plan = p
	s.markers = ComputeMarkers(p)
	s.state = StateReady
}

// Snapshot returns a deep copy of the current plan.
func (s *Store) Snapshot() MealPlan {
	return s.plan.Clone()
}

// Markers returns a copy of the derived calendar markers.
func (s *Store) Markers() Markers {
	out := make(Markers, len(s.markers))
	for k, v := range s.markers {
		out[k] = v
	}
	return out
}

// Place appends a recipe to the end of the slot's sequence for the date,
// creating the day as needed. displayTime overrides the slot default when
// set. Invalid date keys, unknown slots, nameless recipes, and
// out-of-range display times make the call a no-op that returns the
// unchanged plan with ok=false.
func (s *Store) Place(ctx context.Context, dateKey string, slot Slot, rec recipe.GeneratedRecipe, displayTime string) (MealPlan, bool) {
	if !ValidDateKey(dateKey) || !ValidSlot(slot) || strings.TrimSpace(rec.Name) == "" {
		logger.Debug("ignoring invalid placement", "date", dateKey, "slot", slot)
		return s.Snapshot(), false
	}
	if displayTime == "" {
		displayTime = DefaultTime(slot)
	} else if hour, ok := parseHour(displayTime); !ok || !displayableHour(hour) {
		logger.Debug("ignoring placement outside display range", "date", dateKey, "slot", slot, "time", displayTime)
		return s.Snapshot(), false
	}

	day, ok := s.plan[dateKey]
	if !ok {
		day = NewDayPlan()
		s.plan[dateKey] = day
	}

	placed := PlacedRecipe{
		ID:              uuid.NewString(),
		GeneratedRecipe: rec.Clone(),
		Time:            displayTime,
	}
	placed.SourceDate = dateKey

	day.Set(slot, append(day.Get(slot), placed))
	s.markers = ComputeMarkers(s.plan)
	s.persist(ctx)
	return s.Snapshot(), true
}

// Remove deletes the recipe at index from the slot's sequence, keeping
// the order of the rest. Out-of-range indices are a no-op with ok=false;
// UI-driven indices can race a concurrent removal.
func (s *Store) Remove(ctx context.Context, dateKey string, slot Slot, index int) (MealPlan, bool) {
	day, ok := s.plan[dateKey]
	if !ok || !ValidSlot(slot) {
		return s.Snapshot(), false
	}

	recipes := day.Get(slot)
	if index < 0 || index >= len(recipes) {
		return s.Snapshot(), false
	}

	day.Set(slot, append(recipes[:index:index], recipes[index+1:]...))
	if day.Empty() {
		delete(s.plan, dateKey)
	}

	s.markers = ComputeMarkers(s.plan)
	s.persist(ctx)
	return s.Snapshot(), true
}

// Reschedule changes the display time of the placed recipe with the given
// id within a slot. Times outside the 6am-9pm display range, unknown ids,
// and unknown dates are a no-op with ok=false; the display range is
// policy, not a correctness constraint, so silent rejection is fine.
func (s *Store) Reschedule(ctx context.Context, dateKey string, slot Slot, id, newTime string) (MealPlan, bool) {
	hour, ok := parseHour(newTime)
	if !ok || !displayableHour(hour) {
		logger.Debug("ignoring reschedule outside display range", "date", dateKey, "time", newTime)
		return s.Snapshot(), false
	}

	day, present := s.plan[dateKey]
	if !present || !ValidSlot(slot) {
		return s.Snapshot(), false
	}

	recipes := day.Get(slot)
	for i := range recipes {
		if recipes[i].ID == id {
			recipes[i].Time = newTime
			s.markers = ComputeMarkers(s.plan)
			s.persist(ctx)
			return s.Snapshot(), true
		}
	}
	return s.Snapshot(), false
}

// persist writes the full plan through to the local cache and, when an
// identity exists, overwrites the remote document. Failures are logged
// and reported to the listener; they never surface to the mutation's
// caller.
func (s *Store) persist(ctx context.Context) {
	var report PersistReport

	if s.cache != nil {
		if err := s.cache.WritePlan(s.plan); err != nil {
			report.LocalErr = err
			logger.Warn("failed to write meal plan to local cache", "error", err)
		}
	}

	if id := s.currentIdentity(); id != nil && s.remote != nil {
		report.RemoteAttempted = true
		if err := s.remote.WritePlan(ctx, id.UserID, s.plan); err != nil {
			report.RemoteErr = err
			logger.Warn("failed to write meal plan to remote store", "user", id.UserID, "error", err)
		}
	}

	if s.onPersist != nil {
		s.onPersist(report)
	}
}
