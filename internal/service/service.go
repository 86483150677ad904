// Package service implements the task lifecycle: add, update, complete,
// delete, list and get. Every operation loads the whole collection, applies
// its change in memory and saves it back. Two processes saving at once is
// last-write-wins; there is no file locking.
package service

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/storage"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// Repository loads and saves the whole task collection.
type Repository interface {
	Load() (storage.LoadResult, error)
	Save(list []tasks.Task) error
}

// RecoveryHandler is told when a load fell back to the backup file.
type RecoveryHandler func(cause error)

// Service runs task lifecycle operations against a Repository.
type Service struct {
	repo      Repository
	now       func() time.Time
	location  *time.Location
	newID     func() uuid.UUID
	logger    *slog.Logger
	onRecover RecoveryHandler
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithIDGenerator sets the id source.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) { s.newID = gen }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRecoveryHandler registers a callback for loads recovered from backup.
func WithRecoveryHandler(h RecoveryHandler) Option {
	return func(s *Service) { s.onRecover = h }
}

// New creates a Service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		now:      time.Now,
		location: time.Local,
		newID:    uuid.New,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the service's location.
func (s *Service) Today() tasks.Date {
	return tasks.DateOf(s.now().In(s.location))
}

func (s *Service) load() ([]tasks.Task, error) {
	res, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	if res.Recovered {
		s.logger.Debug("loaded from backup", "cause", res.Cause)
		if s.onRecover != nil {
			s.onRecover(res.Cause)
		}
	}
	return res.Tasks, nil
}

// Add validates req, creates the task and persists it.
func (s *Service) Add(req AddRequest) (tasks.Task, error) {
	title, err := tasks.NormalizeTitle(req.Title)
	if err != nil {
		return tasks.Task{}, err
	}
	if err := tasks.ValidateDescription(req.Description); err != nil {
		return tasks.Task{}, err
	}
	priority := req.Priority
	if priority == "" {
		priority = tasks.DefaultPriority
	}
	if !priority.Valid() {
		return tasks.Task{}, &tasks.ValidationError{Field: "priority", Rule: "must be one of low, medium, high", Value: string(priority)}
	}
	tags, err := tasks.NormalizeTags(req.Tags)
	if err != nil {
		return tasks.Task{}, err
	}
	var due *tasks.Date
	if req.DueDate != nil {
		if err := tasks.ValidateDueDate(*req.DueDate, s.Today()); err != nil {
			return tasks.Task{}, err
		}
		d := *req.DueDate
		due = &d
	}

	list, err := s.load()
	if err != nil {
		return tasks.Task{}, err
	}

	t := tasks.Task{
		ID:          s.uniqueID(list),
		Title:       title,
		Description: req.Description,
		CreatedAt:   s.now().UTC(),
		DueDate:     due,
		Priority:    priority,
		Tags:        tags,
	}
	if err := t.Validate(); err != nil {
		return tasks.Task{}, err
	}

	list = append(list, t)
	if err := s.repo.Save(list); err != nil {
		return tasks.Task{}, err
	}
	s.logger.Debug("task added", "id", t.ID)
	return t.Clone(), nil
}

func (s *Service) uniqueID(list []tasks.Task) uuid.UUID {
	for {
		id := s.newID()
		taken := slices.ContainsFunc(list, func(t tasks.Task) bool { return t.ID == id })
		if !taken && id != uuid.Nil {
			return id
		}
	}
}

// Update applies the supplied changes to the task matching idInput.
// Adding a tag already present and removing one that is absent are no-ops.
// Removals are applied before additions.
func (s *Service) Update(idInput string, ch Changes) (tasks.Task, error) {
	if err := ch.checkImmutable(); err != nil {
		return tasks.Task{}, err
	}

	list, err := s.load()
	if err != nil {
		return tasks.Task{}, err
	}
	i, err := query.Resolve(list, idInput)
	if err != nil {
		return tasks.Task{}, err
	}

	updated, err := s.applyChanges(list[i].Clone(), ch)
	if err != nil {
		return tasks.Task{}, err
	}

	list[i] = updated
	if err := s.repo.Save(list); err != nil {
		return tasks.Task{}, err
	}
	s.logger.Debug("task updated", "id", updated.ID)
	return updated.Clone(), nil
}

func (s *Service) applyChanges(t tasks.Task, ch Changes) (tasks.Task, error) {
	if v, ok := ch.Title.Get(); ok {
		title, err := tasks.NormalizeTitle(v)
		if err != nil {
			return t, err
		}
		t.Title = title
	}
	if v, ok := ch.Description.Get(); ok {
		if err := tasks.ValidateDescription(v); err != nil {
			return t, err
		}
		t.Description = v
	}
	if v, ok := ch.DueDate.Get(); ok {
		t.DueDate = nil
		if v != nil {
			if err := tasks.ValidateDueDate(*v, s.Today()); err != nil {
				return t, err
			}
			d := *v
			t.DueDate = &d
		}
	}
	if v, ok := ch.Priority.Get(); ok {
		if !v.Valid() {
			return t, &tasks.ValidationError{Field: "priority", Rule: "must be one of low, medium, high", Value: string(v)}
		}
		t.Priority = v
	}
	if len(ch.AddTags) > 0 || len(ch.RemoveTags) > 0 {
		tags, err := mergeTags(t.Tags, ch.AddTags, ch.RemoveTags)
		if err != nil {
			return t, err
		}
		t.Tags = tags
	}
	return t, t.Validate()
}

func mergeTags(current, add, remove []string) ([]string, error) {
	added, err := tasks.NormalizeTags(add)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, tag := range current {
		if !slices.ContainsFunc(remove, func(r string) bool { return strings.ToLower(strings.TrimSpace(r)) == tag }) {
			out = append(out, tag)
		}
	}
	for _, tag := range added {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	if len(out) > tasks.MaxTags {
		return nil, &tasks.ValidationError{Field: "tags", Rule: fmt.Sprintf("must have at most %d entries", tasks.MaxTags)}
	}
	return out, nil
}

// Complete marks the task matching idInput complete. The returned task
// carries CompletedAt so callers can show Elapsed. On ErrAlreadyComplete the
// stored task is returned unchanged alongside the error.
func (s *Service) Complete(idInput string) (tasks.Task, error) {
	list, err := s.load()
	if err != nil {
		return tasks.Task{}, err
	}
	i, err := query.Resolve(list, idInput)
	if err != nil {
		return tasks.Task{}, err
	}
	if err := list[i].Complete(s.now()); err != nil {
		return list[i].Clone(), err
	}
	if err := s.repo.Save(list); err != nil {
		return tasks.Task{}, err
	}
	s.logger.Debug("task completed", "id", list[i].ID)
	return list[i].Clone(), nil
}

// Delete permanently removes the task matching idInput and returns it.
// Confirmation, if any, is the caller's job before calling Delete.
func (s *Service) Delete(idInput string) (tasks.Task, error) {
	list, err := s.load()
	if err != nil {
		return tasks.Task{}, err
	}
	i, err := query.Resolve(list, idInput)
	if err != nil {
		return tasks.Task{}, err
	}
	removed := list[i].Clone()
	list = slices.Delete(list, i, i+1)
	if err := s.repo.Save(list); err != nil {
		return tasks.Task{}, err
	}
	s.logger.Debug("task deleted", "id", removed.ID)
	return removed, nil
}

// List returns copies of the tasks matching f ordered by key. If f.Today is
// unset the service's current date is used.
func (s *Service) List(f query.Filter, key query.SortKey) ([]tasks.Task, error) {
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	if f.Today.IsZero() {
		f.Today = s.Today()
	}
	matched := query.Apply(list, f, key)
	out := make([]tasks.Task, len(matched))
	for i, t := range matched {
		out[i] = t.Clone()
	}
	return out, nil
}

// Get returns a copy of the task matching idInput.
func (s *Service) Get(idInput string) (tasks.Task, error) {
	list, err := s.load()
	if err != nil {
		return tasks.Task{}, err
	}
	i, err := query.Resolve(list, idInput)
	if err != nil {
		return tasks.Task{}, err
	}
	return list[i].Clone(), nil
}
