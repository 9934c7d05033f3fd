package session

import (
	"context"
	"fmt"

	"github.com/Velocidex/ordereddict"
	"github.com/google/uuid"

	"github.com/unireport/viewer/internal/application"
	"github.com/unireport/viewer/internal/domain/audit"
	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
	"github.com/unireport/viewer/internal/logger"
)

// Service implements the viewer use-cases over the session store. Every
// operation on a session runs under that session's lock, fetches included,
// so a second action on the same session waits for the first to finish.
type Service struct {
	Repo     scans.Repository
	Audit    audit.Store
	Clock    application.Clock
	Sessions *Manager

	// TreeDepth caps archive tree rendering; 0 walks without a cap.
	TreeDepth int
}

//
// ==== USE CASES ====
//

// Listing is the scan list for the session's username plus its display
// table, newest first.
type Listing struct {
	Files []scans.ScanFile `json:"files"`
	Table report.Table     `json:"table"`
}

// SectionInfo describes one report view for navigation.
type SectionInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SectionView is one rendered section: its tables after filtering, with
// shown/total row counts per table.
type SectionView struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Query  string      `json:"query,omitempty"`
	Tables []TableView `json:"tables"`
}

type TableView struct {
	Table report.Table `json:"table"`
	Shown int          `json:"shown"`
	Total int          `json:"total"`
}

// Create opens a new empty session.
func (v *Service) Create() Info {
	sess := v.Sessions.Create()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot()
}

// Get returns the session snapshot.
func (v *Service) Get(sid string) (Info, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// SetUser records the username scans are searched for. A new name rewinds
// the session; re-entering the current one changes nothing.
func (v *Service) SetUser(ctx context.Context, sid, username string) (Info, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	changed, err := sess.setUser(username)
	if err != nil {
		return Info{}, err
	}
	if changed {
		v.record(ctx, sess, audit.ActionSearch, sess.username, "")
	}
	return sess.snapshot(), nil
}

// Scans fetches the stored scans for the session's username and caches
// the listing in the session.
func (v *Service) Scans(ctx context.Context, sid string) (*Listing, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	username, err := sess.requireUser()
	if err != nil {
		return nil, err
	}
	files, err := v.Repo.List(ctx, username)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []scans.ScanFile{}
	}
	sess.setFiles(files)
	v.record(ctx, sess, audit.ActionList, username, fmt.Sprintf("%d files", len(files)))
	return &Listing{Files: files, Table: scans.ListingTable(files)}, nil
}

// Select picks one file from the session's current listing. Selecting a
// different file drops the loaded document; the same file is a no-op.
func (v *Service) Select(ctx context.Context, sid, fileName string) (Info, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.selectFile(fileName); err != nil {
		return Info{}, err
	}
	return sess.snapshot(), nil
}

// Load downloads and decodes the selected scan. An already loaded
// document is kept; a failed download leaves the selection intact so the
// operator can retry.
func (v *Service) Load(ctx context.Context, sid string) (Info, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	fileName, err := sess.requireSelection()
	if err != nil {
		return Info{}, err
	}
	if sess.doc != nil {
		return sess.snapshot(), nil
	}
	doc, err := v.Repo.Download(ctx, fileName)
	if err != nil {
		return Info{}, err
	}
	sess.setDocument(doc)
	v.record(ctx, sess, audit.ActionDownload, fileName, "")
	return sess.snapshot(), nil
}

// Overview renders the loaded document's headline and stats.
func (v *Service) Overview(ctx context.Context, sid string) (*report.Overview, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc, err := sess.document()
	if err != nil {
		return nil, err
	}
	o := doc.Overview()
	sess.section = report.SectionOverview
	v.record(ctx, sess, audit.ActionView, report.SectionOverview, "")
	return &o, nil
}

// SectionList returns the section descriptors in sidebar order.
func (v *Service) SectionList() []SectionInfo {
	out := make([]SectionInfo, 0, len(report.Sections))
	for _, s := range report.Sections {
		out = append(out, SectionInfo{ID: s.ID, Title: s.Title})
	}
	return out
}

// Section renders one section over the loaded document, filtered by q.
func (v *Service) Section(ctx context.Context, sid, sectionID, q string) (*SectionView, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc, err := sess.document()
	if err != nil {
		return nil, err
	}
	section, ok := report.SectionByID(sectionID)
	if !ok {
		return nil, ErrUnknownSection
	}

	view := &SectionView{ID: section.ID, Title: section.Title, Query: q}
	for _, t := range section.Tables(doc) {
		filtered := t.Filter(q)
		view.Tables = append(view.Tables, TableView{
			Table: filtered,
			Shown: filtered.Len(),
			Total: t.Len(),
		})
	}
	sess.section = sectionID
	v.record(ctx, sess, audit.ActionView, sectionID, q)
	return view, nil
}

// SectionTable returns one filtered section table without recording a
// view. Row addressing (details, archives, summaries) goes through here
// so indexes always refer to the filtered view the client sees.
func (v *Service) SectionTable(ctx context.Context, sid, sectionID, q string, tableIdx int) (report.Table, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return report.Table{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return v.sectionTable(sess, sectionID, q, tableIdx)
}

// sectionTable must be called under the session lock.
func (v *Service) sectionTable(sess *Session, sectionID, q string, tableIdx int) (report.Table, error) {
	doc, err := sess.document()
	if err != nil {
		return report.Table{}, err
	}
	section, ok := report.SectionByID(sectionID)
	if !ok {
		return report.Table{}, ErrUnknownSection
	}
	tables := section.Tables(doc)
	if tableIdx < 0 || tableIdx >= len(tables) {
		return report.Table{}, ErrUnknownTable
	}
	return tables[tableIdx].Filter(q), nil
}

// RowDetail returns the detail fields of one row in a filtered section
// table.
func (v *Service) RowDetail(ctx context.Context, sid, sectionID, q string, tableIdx, rowIdx int) (*ordereddict.Dict, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	table, err := v.sectionTable(sess, sectionID, q, tableIdx)
	if err != nil {
		return nil, err
	}
	row, ok := table.Row(rowIdx)
	if !ok {
		return nil, ErrRowOutOfRange
	}
	return report.DetailFields(row), nil
}

// RowArchive renders the archive tree attached to one row. Rows without
// an archive yield the not-an-archive notice.
func (v *Service) RowArchive(ctx context.Context, sid, sectionID, q string, tableIdx, rowIdx int) ([]report.Node, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	table, err := v.sectionTable(sess, sectionID, q, tableIdx)
	if err != nil {
		return nil, err
	}
	row, ok := table.RawRow(rowIdx)
	if !ok {
		return nil, ErrRowOutOfRange
	}
	return report.WalkArchive(report.ArchiveContents(row), v.TreeDepth), nil
}

// ProcessByPID returns the raw process record with the given pid.
func (v *Service) ProcessByPID(ctx context.Context, sid string, pid int64) (*ordereddict.Dict, error) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc, err := sess.document()
	if err != nil {
		return nil, err
	}
	rec, ok := doc.ProcessByPID(pid)
	if !ok {
		return nil, ErrProcessNotFound
	}
	return rec, nil
}

// RecordEvent writes an audit event for a session outside the standard
// flow (the summarize endpoint uses it).
func (v *Service) RecordEvent(ctx context.Context, sid string, action audit.Action, target, detail string) {
	sess, err := v.Sessions.Get(sid)
	if err != nil {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	v.record(ctx, sess, action, target, detail)
}

// record must be called under the session lock. Audit failures are logged
// and never fail the operation.
func (v *Service) record(ctx context.Context, sess *Session, action audit.Action, target, detail string) {
	if v.Audit == nil {
		return
	}
	e := &audit.Event{
		ID:        uuid.New().String(),
		At:        v.Clock.Now(),
		SessionID: sess.id,
		Username:  sess.username,
		Action:    action,
		Target:    target,
		Detail:    detail,
	}
	if err := v.Audit.Save(ctx, e); err != nil {
		logger.Warnf("audit save failed: %v", err)
	}
}
