package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/hotelmanager/staffkit/core"
)

// DeriveView filters and orders tasks according to the given preferences.
// All filter predicates are AND-combined; sorting is stable with respect
// to input order on ties. The input slice is never mutated.
func DeriveView(tasks []core.Task, prefs core.FilterPreferences, currentUserID string) []core.Task {
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilters(t, prefs, currentUserID) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lessBySortKey(out[i], out[j], prefs.SortBy)
	})

	return out
}

func matchesFilters(t core.Task, prefs core.FilterPreferences, currentUserID string) bool {
	if len(prefs.Status) > 0 && !containsStatus(prefs.Status, t.Status) {
		return false
	}
	if len(prefs.Priority) > 0 && !containsPriority(prefs.Priority, t.Priority) {
		return false
	}
	if prefs.Type != "" && t.Type != prefs.Type {
		return false
	}
	// Assignment filtering needs a current user to compare against;
	// without one (profile not yet resolved) both branches keep
	// everything.
	switch prefs.Assignment {
	case core.AssignmentMine:
		if currentUserID != "" && t.AssignedTo != currentUserID {
			return false
		}
	case core.AssignmentOthers:
		if currentUserID != "" && t.AssignedTo == currentUserID {
			return false
		}
	}
	return true
}

func lessBySortKey(a, b core.Task, key core.SortKey) bool {
	switch key {
	case core.SortPriorityDesc:
		return a.Priority.Ordinal() > b.Priority.Ordinal()
	case core.SortPriorityAsc:
		return a.Priority.Ordinal() < b.Priority.Ordinal()
	case core.SortDateDesc:
		return a.CreatedAt.After(b.CreatedAt)
	case core.SortDateAsc:
		return a.CreatedAt.Before(b.CreatedAt)
	case core.SortStatusAsc:
		return a.Status.Ordinal() < b.Status.Ordinal()
	case core.SortStatusDesc:
		return a.Status.Ordinal() > b.Status.Ordinal()
	default:
		// Unknown key keeps input order.
		return false
	}
}

func containsStatus(set []core.TaskStatus, s core.TaskStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []core.TaskPriority, p core.TaskPriority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

// FilterPatch is a partial preference update. Nil fields are left
// untouched; set fields replace the current value wholesale.
type FilterPatch struct {
	Status     *[]core.TaskStatus
	Priority   *[]core.TaskPriority
	Type       *core.TaskType
	Assignment *core.AssignmentFilter
}

// TaskViewService holds the current view preferences, derives task views
// and persists every preference change under a fixed key. Persistence is
// best effort: the in-memory state stays authoritative for the session.
type TaskViewService struct {
	storage core.PreferenceStorage
	logger  *slog.Logger

	mu    sync.RWMutex
	prefs core.FilterPreferences
}

func NewTaskViewService(storage core.PreferenceStorage, logger *slog.Logger) *TaskViewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskViewService{
		storage: storage,
		logger:  logger,
		prefs:   core.DefaultPreferences(),
	}
}

// Load reads saved preferences once, typically at startup. A missing key
// or unreadable document keeps the defaults.
func (s *TaskViewService) Load(ctx context.Context) {
	data, err := s.storage.Get(ctx, core.PreferenceKey)
	if err != nil {
		if !errors.Is(err, core.ErrPreferencesNotFound) {
			s.logger.Warn("loading filter preferences", "error", err)
		}
		return
	}

	prefs, err := core.DecodePreferences(data)
	if err != nil {
		s.logger.Warn("decoding filter preferences", "error", err)
		return
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
}

// Preferences returns a copy of the current preferences.
func (s *TaskViewService) Preferences() core.FilterPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// UpdateFilters merges a partial change into the current preferences
// (last write wins per field) and persists the full document.
func (s *TaskViewService) UpdateFilters(ctx context.Context, patch FilterPatch) core.FilterPreferences {
	s.mu.Lock()
	if patch.Status != nil {
		s.prefs.Status = *patch.Status
	}
	if patch.Priority != nil {
		s.prefs.Priority = *patch.Priority
	}
	if patch.Type != nil {
		s.prefs.Type = *patch.Type
	}
	if patch.Assignment != nil {
		s.prefs.Assignment = *patch.Assignment
	}
	prefs := s.prefs
	s.mu.Unlock()

	s.persist(ctx, prefs)
	return prefs
}

// UpdateSort replaces the sort key and persists the full document.
func (s *TaskViewService) UpdateSort(ctx context.Context, key core.SortKey) core.FilterPreferences {
	s.mu.Lock()
	s.prefs.SortBy = key
	prefs := s.prefs
	s.mu.Unlock()

	s.persist(ctx, prefs)
	return prefs
}

// View derives the filtered, ordered task view under the current
// preferences.
func (s *TaskViewService) View(tasks []core.Task, currentUserID string) []core.Task {
	return DeriveView(tasks, s.Preferences(), currentUserID)
}

func (s *TaskViewService) persist(ctx context.Context, prefs core.FilterPreferences) {
	data, err := core.EncodePreferences(prefs)
	if err != nil {
		s.logger.Warn("encoding filter preferences", "error", err)
		return
	}
	if err := s.storage.Set(ctx, core.PreferenceKey, data); err != nil {
		s.logger.Warn("saving filter preferences", "error", err)
	}
}
