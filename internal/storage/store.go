package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const DataFileName = "taskquest-data.json"

// ErrStorage matches any *StorageError via errors.Is.
var ErrStorage = errors.New("storage error")

// StorageError wraps an I/O failure on the data file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

type LoadStatus int

const (
	// LoadExisting means the document was read from disk.
	LoadExisting LoadStatus = iota
	// LoadCreated means no file existed yet.
	LoadCreated
	// LoadRecovered means the file was unreadable or corrupt and was replaced.
	LoadRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case LoadExisting:
		return "existing"
	case LoadCreated:
		return "created"
	case LoadRecovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// DefaultDataPath returns the default TaskQuest data file location.
func DefaultDataPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".taskquest", DataFileName), nil
}

// Store reads and writes the whole document as a single JSON file.
type Store struct {
	path string
	log  logrus.FieldLogger
}

func NewStore(path string, log logrus.FieldLogger) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Store{path: path, log: log}
}

func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file yields LoadCreated and a corrupt or
// unreadable one yields LoadRecovered; in both cases the returned document is
// a fresh NewDocument and the caller is expected to seed and save it.
func (s *Store) Load(ctx context.Context) (*Document, LoadStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, LoadExisting, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.WithField("path", s.path).Info("no data file yet, starting fresh")
			return NewDocument(), LoadCreated, nil
		}
		s.log.WithError(&StorageError{Op: "load", Path: s.path, Err: err}).Warn("data file unreadable, starting fresh")
		return NewDocument(), LoadRecovered, nil
	}

	doc, defaulted, err := decode(data)
	if err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("data file corrupt, starting fresh")
		return NewDocument(), LoadRecovered, nil
	}
	for _, d := range defaulted {
		s.log.WithError(d).WithField("path", s.path).Warn("data file section unreadable, using defaults")
	}

	s.log.WithFields(logrus.Fields{
		"path":   s.path,
		"tasks":  len(doc.Tasks),
		"level":  doc.Profile.Level,
		"points": doc.Profile.TotalPoints,
	}).Debug("data loaded")
	return doc, LoadExisting, nil
}

// Save overwrites the data file with the whole document.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(doc)
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: filepath.Dir(s.path), Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "rename", Path: s.path, Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"path":   s.path,
		"tasks":  len(doc.Tasks),
		"level":  doc.Profile.Level,
		"points": doc.Profile.TotalPoints,
	}).Debug("data saved")
	return nil
}

// Encode renders the document the way it is stored on disk.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a stored document. Only "tasks" is mandatory: a document
// whose "tasks" key is not a well-formed array is rejected. Every other key
// is decoded on its own, and one that does not fit keeps its defaults.
func Decode(data []byte) (*Document, error) {
	doc, _, err := decode(data)
	return doc, err
}

// decode is Decode that also reports, per top-level key, what had to be
// defaulted.
func decode(data []byte) (*Document, []error, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	raw, ok := probe["tasks"]
	if !ok || !isJSONArray(raw) {
		return nil, nil, errors.New("parse document: tasks is not an array")
	}

	doc := NewDocument()
	if err := json.Unmarshal(raw, &doc.Tasks); err != nil {
		return nil, nil, fmt.Errorf("parse tasks: %w", err)
	}

	// Objects keep whatever fields did decode; lists and counters are all
	// or nothing.
	sections := []struct {
		key     string
		dst     any
		partial bool
		reset   func()
	}{
		{"profile", &doc.Profile, true, func() { doc.Profile = DefaultProfile() }},
		{"config", &doc.Config, true, func() { doc.Config = DefaultConfig() }},
		{"quests", &doc.Quests, false, func() { doc.Quests = []Quest{} }},
		{"activeQuests", &doc.ActiveQuests, false, func() { doc.ActiveQuests = []Quest{} }},
		{"nextTaskId", &doc.NextTaskID, false, func() { doc.NextTaskID = 1 }},
		{"nextQuestId", &doc.NextQuestID, false, func() { doc.NextQuestID = 1 }},
	}
	var defaulted []error
	for _, sec := range sections {
		raw, ok := probe[sec.key]
		if !ok {
			continue
		}
		err := json.Unmarshal(raw, sec.dst)
		if err == nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if !sec.partial || !errors.As(err, &typeErr) {
			sec.reset()
		}
		defaulted = append(defaulted, fmt.Errorf("%s: %w", sec.key, err))
	}

	normalize(doc)
	return doc, defaulted, nil
}

func isJSONArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

// normalize fills in whatever a partial document left empty and keeps the id
// counters ahead of every id already in use.
func normalize(doc *Document) {
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	if doc.Quests == nil {
		doc.Quests = []Quest{}
	}
	if doc.ActiveQuests == nil {
		doc.ActiveQuests = []Quest{}
	}
	if doc.Profile.Badges == nil {
		doc.Profile.Badges = []string{}
	}
	if doc.Profile.Skills == nil {
		doc.Profile.Skills = DefaultProfile().Skills
	}
	if doc.Profile.Level < 1 {
		doc.Profile.Level = 1
	}
	if len(doc.Config.LevelThresholds) == 0 {
		doc.Config.LevelThresholds = DefaultConfig().LevelThresholds
	}

	for _, t := range doc.Tasks {
		if t.ID >= doc.NextTaskID {
			doc.NextTaskID = t.ID + 1
		}
	}
	for _, list := range [][]Quest{doc.Quests, doc.ActiveQuests} {
		for _, q := range list {
			if q.ID >= doc.NextQuestID {
				doc.NextQuestID = q.ID + 1
			}
		}
	}
	if doc.NextTaskID < 1 {
		doc.NextTaskID = 1
	}
	if doc.NextQuestID < 1 {
		doc.NextQuestID = 1
	}
}
