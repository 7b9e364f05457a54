package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/vtable/internal/logging"
	"github.com/JonMunkholm/vtable/internal/selection"
	"github.com/google/uuid"
)

// selectionSession is one client's checked-row state for a table.
type selectionSession struct {
	id       string
	tableKey string
	ctrl     *selection.Controller[string]
	lastUsed time.Time
}

// StartSelection opens a selection session over row keys. status[i] is the
// initial checked state of keys[i]. tableKey is informational and may be empty.
func (s *Service) StartSelection(ctx context.Context, tableKey string, keys []string, status []bool) (*SelectionState, error) {
	if len(keys) > s.selectionCfg.MaxRows {
		return nil, fmt.Errorf("%w: %d rows exceeds limit of %d", ErrSelectionTooLarge, len(keys), s.selectionCfg.MaxRows)
	}
	if tableKey != "" {
		if _, ok := Get(tableKey); !ok {
			return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableKey)
		}
	}

	sess := &selectionSession{
		id:       uuid.New().String(),
		tableKey: tableKey,
		ctrl:     selection.New(keys, status),
		lastUsed: s.now(),
	}

	s.mu.Lock()
	s.selections[sess.id] = sess
	s.mu.Unlock()

	logging.WithFields(ctx, "selection_id", sess.id, "table", tableKey).
		Debug("selection started", "rows", len(keys))
	return s.snapshot(sess), nil
}

// Selection returns the current state of a session and extends its lifetime.
func (s *Service) Selection(id string) (*SelectionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// ToggleSelection flips one row of a session.
func (s *Service) ToggleSelection(id string, index int) (*SelectionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	if err := sess.ctrl.Toggle(index); err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// ToggleAllSelection checks every row, or clears them all when every row is
// already checked.
func (s *Service) ToggleAllSelection(id string) (*SelectionState, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	sess.ctrl.ToggleAll()
	return s.snapshot(sess), nil
}

// EndSelection discards a session.
func (s *Service) EndSelection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selections[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSelectionNotFound, id)
	}
	delete(s.selections, id)
	return nil
}

// PruneSelections removes sessions idle for longer than the configured TTL
// and returns how many were removed.
func (s *Service) PruneSelections(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.selections {
		if now.Sub(sess.lastUsed) > s.selectionCfg.TTL {
			delete(s.selections, id)
			removed++
		}
	}
	return removed
}

// SelectionCount returns the number of open sessions.
func (s *Service) SelectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selections)
}

// touch looks up a live session and marks it used.
func (s *Service) touch(id string) (*selectionSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.selections[id]
	if !ok || now.Sub(sess.lastUsed) > s.selectionCfg.TTL {
		delete(s.selections, id)
		return nil, fmt.Errorf("%w: %s", ErrSelectionNotFound, id)
	}
	sess.lastUsed = now
	return sess, nil
}

func (s *Service) snapshot(sess *selectionSession) *SelectionState {
	s.mu.RLock()
	expires := sess.lastUsed.Add(s.selectionCfg.TTL)
	s.mu.RUnlock()

	snap := sess.ctrl.Snapshot()
	return &SelectionState{
		ID:         sess.id,
		TableKey:   sess.tableKey,
		Keys:       snap.Source,
		Status:     snap.Status,
		Checked:    snap.Checked,
		AllChecked: snap.AllChecked,
		Count:      len(snap.Checked),
		ExpiresAt:  expires,
	}
}
