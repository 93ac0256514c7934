package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"taskquest/internal/storage"
)

// Store persists the whole document. *storage.Store is the implementation.
type Store interface {
	Load(ctx context.Context) (*storage.Document, storage.LoadStatus, error)
	Save(ctx context.Context, doc *storage.Document) error
	Path() string
}

// Service owns the in-memory document and exposes every tq operation.
// Mutating calls save the whole document before returning. Calls are
// serialized internally so the HTTP server can share one Service.
type Service struct {
	mu    sync.Mutex
	store Store
	doc   *storage.Document
	log   logrus.FieldLogger
	now   func() time.Time
	loc   *time.Location
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone used for calendar days and badge hours.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Open loads the document from store. A first run, or a corrupt file, gets
// the sample tasks and quest catalog and is written back immediately.
func Open(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		store: store,
		log:   discard,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, status, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.reconcileQuests()

	dirty := false
	if status != storage.LoadExisting {
		storage.Seed(doc, s.clock())
		s.awardPoints(s.newOutcome(), ActionComplete, &doc.Tasks[0])
		s.log.WithField("status", status.String()).Info("seeded sample data")
		dirty = true
	}

	// A stored level behind its points is raised; one ahead is kept.
	level := doc.Profile.Level
	s.checkLevelUp(s.newOutcome())
	if doc.Profile.Level != level {
		dirty = true
	}

	streak := doc.Profile.Streak
	lastActive := doc.Profile.LastActiveDate
	s.updateStreak()
	if doc.Profile.Streak != streak || doc.Profile.LastActiveDate != lastActive {
		dirty = true
	}

	if dirty {
		if err := s.store.Save(ctx, s.doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DataPath returns where the document is stored.
func (s *Service) DataPath() string { return s.store.Path() }

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) commit(ctx context.Context) error {
	return s.store.Save(ctx, s.doc)
}

func (s *Service) findTask(id int64) *storage.Task {
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == id {
			return &s.doc.Tasks[i]
		}
	}
	return nil
}
