package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
)

// State names one step of the viewer flow. The chain only moves forward
// for one username; changing the username rewinds everything behind it.
type State string

const (
	StateNoUser         State = "no_user"
	StateUserEntered    State = "user_entered"
	StateFilesListed    State = "files_listed"
	StateFileSelected   State = "file_selected"
	StateDocumentLoaded State = "document_loaded"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrEmptyUsername   = errors.New("username is empty")
	ErrNoUsername      = errors.New("no username entered")
	ErrNotListed       = errors.New("scan list not loaded")
	ErrUnknownFile     = errors.New("file not in current listing")
	ErrNoSelection     = errors.New("no scan selected")
	ErrNotLoaded       = errors.New("no document loaded")
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownTable    = errors.New("table index out of range")
	ErrRowOutOfRange   = errors.New("row index out of range")
	ErrProcessNotFound = errors.New("process not found")
)

// Session holds the view state for one operator: at most one loaded
// document plus the selection chain that produced it. All access goes
// through the Service, which serializes whole operations under mu.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time

	state    State
	username string
	files    []scans.ScanFile
	selected string
	section  string
	doc      *report.Document
}

func newSession(id string, now time.Time) *Session {
	return &Session{id: id, createdAt: now, state: StateNoUser}
}

func (s *Session) ID() string { return s.id }

// Info is the serializable session snapshot handed to clients.
type Info struct {
	ID       string `json:"session_id"`
	State    State  `json:"state"`
	Username string `json:"username,omitempty"`
	Files    int    `json:"files,omitempty"`
	Selected string `json:"selected_file,omitempty"`
	Section  string `json:"section,omitempty"`
	Loaded   bool   `json:"document_loaded"`
}

// snapshot must be called under mu.
func (s *Session) snapshot() Info {
	return Info{
		ID:       s.id,
		State:    s.state,
		Username: s.username,
		Files:    len(s.files),
		Selected: s.selected,
		Section:  s.section,
		Loaded:   s.doc != nil,
	}
}

// setUser records the username. A changed name rewinds the whole chain;
// re-entering the current name is a no-op. Must be called under mu.
func (s *Session) setUser(username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, ErrEmptyUsername
	}
	if s.state != StateNoUser && s.username == username {
		return false, nil
	}
	s.username = username
	s.state = StateUserEntered
	s.files = nil
	s.selected = ""
	s.section = ""
	s.doc = nil
	return true, nil
}

// requireUser must be called under mu.
func (s *Session) requireUser() (string, error) {
	if s.state == StateNoUser || s.username == "" {
		return "", ErrNoUsername
	}
	return s.username, nil
}

// setFiles stores a fresh listing. A selection still present in the new
// listing survives with its document; anything else is dropped. Must be
// called under mu.
func (s *Session) setFiles(files []scans.ScanFile) {
	s.files = files
	if s.selected != "" && s.hasFile(s.selected) {
		return
	}
	s.selected = ""
	s.section = ""
	s.doc = nil
	s.state = StateFilesListed
}

func (s *Session) hasFile(fileName string) bool {
	for _, f := range s.files {
		if f.FileName == fileName {
			return true
		}
	}
	return false
}

// selectFile picks one file from the current listing. Selecting a
// different file drops the loaded document; re-selecting the current one
// keeps it. Must be called under mu.
func (s *Session) selectFile(fileName string) (bool, error) {
	if s.state == StateNoUser || s.state == StateUserEntered {
		return false, ErrNotListed
	}
	if !s.hasFile(fileName) {
		return false, ErrUnknownFile
	}
	if s.selected == fileName {
		return false, nil
	}
	s.selected = fileName
	s.section = ""
	s.doc = nil
	s.state = StateFileSelected
	return true, nil
}

// requireSelection must be called under mu.
func (s *Session) requireSelection() (string, error) {
	if s.selected == "" {
		return "", ErrNoSelection
	}
	return s.selected, nil
}

// setDocument must be called under mu.
func (s *Session) setDocument(doc *report.Document) {
	s.doc = doc
	s.state = StateDocumentLoaded
}

// document must be called under mu.
func (s *Session) document() (*report.Document, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	return s.doc, nil
}
