package store

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

var (
	// ErrDuplicate signals that an add was rejected because an equivalent
	// item already exists.
	ErrDuplicate = errors.New("duplicate item")
	// ErrNotFound signals that no stored item matched.
	ErrNotFound = errors.New("item not found")
)

// document is the full persisted state: one JSON file with three
// collections, pretty-printed.
type document struct {
	Exams       []models.Exam       `json:"exams"`
	Submissions []models.Submission `json:"submissions"`
	Users       []models.User       `json:"users"`
}

func emptyDocument() document {
	return document{
		Exams:       []models.Exam{},
		Submissions: []models.Submission{},
		Users:       []models.User{},
	}
}

// Store is a JSON-file-backed store over exams, submissions and users.
// Every mutating operation rewrites the whole document synchronously before
// returning; a mutex serializes read-modify-write cycles so concurrent
// requests cannot race on the in-memory snapshot.
type Store struct {
	path   string
	logger utils.Logger

	mu    sync.Mutex
	state document
}

// Open reads the backing file at path, initializing it with empty
// collections if absent. A corrupt or unreadable file degrades to an empty
// in-memory state instead of failing.
func Open(path string, logger utils.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.state = s.load()
	return s
}

// Reload re-reads the backing file and replaces the in-memory state.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.load()
}

func (s *Store) load() document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := emptyDocument()
			s.write(doc)
			return doc
		}
		s.logger.LogError(err, "failed to read store file", "path", s.path)
		return emptyDocument()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.LogError(err, "store file is corrupt, starting empty", "path", s.path)
		return emptyDocument()
	}
	if doc.Exams == nil {
		doc.Exams = []models.Exam{}
	}
	if doc.Submissions == nil {
		doc.Submissions = []models.Submission{}
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}

	doc.Exams = dedupe(doc.Exams, func(e models.Exam) int { return e.ID })
	doc.Submissions = dedupe(doc.Submissions, func(sub models.Submission) int { return sub.ID })
	doc.Users = dedupe(doc.Users, func(u models.User) int { return u.ID })

	// Persist the cleaned form only when dedupe actually changed something.
	cleaned, err := json.MarshalIndent(doc, "", "  ")
	if err == nil && string(cleaned) != string(raw) {
		s.write(doc)
	}

	return doc
}

// dedupe keeps the first occurrence per id; items without an id are keyed
// by their full JSON encoding.
func dedupe[T any](items []T, id func(T) int) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		var key string
		if n := id(item); n != 0 {
			key = "id:" + strconv.Itoa(n)
		} else {
			raw, err := json.Marshal(item)
			if err != nil {
				out = append(out, item)
				continue
			}
			key = "raw:" + string(raw)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// save persists the current state. Write failures are logged and swallowed:
// memory and disk may diverge until the next successful write or an explicit
// reload, which is an accepted limitation of the single-file design.
func (s *Store) save() {
	s.write(s.state)
}

func (s *Store) write(doc document) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.LogError(err, "failed to encode store document")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.logger.LogError(err, "failed to save store file", "path", s.path)
	}
}

// maxID returns the highest id among items, or 0 for an empty slice.
func maxID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if n := id(item); n > max {
			max = n
		}
	}
	return max
}
