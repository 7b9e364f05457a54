// Package selection tracks which rows of a table are checked.
//
// A Controller pairs a row source with one boolean per row and keeps an
// index-to-row map of the checked rows, so the header "select all" box and
// the checked subset can be read without scanning the source.
package selection

import (
	"errors"
	"fmt"
	"sync"
)

// ErrIndexOutOfRange is returned by Toggle for an index outside the source.
var ErrIndexOutOfRange = errors.New("row index out of range")

// Controller holds the checked state of a row source.
// It is safe for concurrent use.
type Controller[T any] struct {
	mu         sync.RWMutex
	source     []T
	checked    []bool
	checkMap   map[int]T
	allChecked bool
}

// New returns a Controller for source. status[i] is the initial state of
// source[i]; missing entries are unchecked and extra entries are ignored.
func New[T any](source []T, status []bool) *Controller[T] {
	c := &Controller[T]{}
	c.load(source, status)
	return c
}

// Reset replaces the source and its initial states.
func (c *Controller[T]) Reset(source []T, status []bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(source, status)
}

func (c *Controller[T]) load(source []T, status []bool) {
	c.source = append([]T(nil), source...)
	c.checked = make([]bool, len(source))
	c.checkMap = make(map[int]T)

	for i, row := range c.source {
		if i < len(status) && status[i] {
			c.checked[i] = true
			c.checkMap[i] = row
		}
	}
	c.updateAllChecked()
}

// updateAllChecked must be called with mu held for writing.
func (c *Controller[T]) updateAllChecked() {
	c.allChecked = len(c.source) > 0 && len(c.checkMap) == len(c.source)
}

// Checked returns the checked rows in source order.
func (c *Controller[T]) Checked() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.checkMap))
	for i, on := range c.checked {
		if row, ok := c.checkMap[i]; on && ok {
			result = append(result, row)
		}
	}
	return result
}

// Status returns a copy of the per-row checked states.
func (c *Controller[T]) Status() []bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]bool(nil), c.checked...)
}

// CheckMap returns a shallow copy of the checked index-to-row map.
func (c *Controller[T]) CheckMap() map[int]T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m := make(map[int]T, len(c.checkMap))
	for i, row := range c.checkMap {
		m[i] = row
	}
	return m
}

// AllChecked reports whether the source is non-empty and every row is checked.
func (c *Controller[T]) AllChecked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.allChecked
}

// IsChecked reports whether row index is checked. Out-of-range indexes are
// unchecked.
func (c *Controller[T]) IsChecked(index int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return index >= 0 && index < len(c.checked) && c.checked[index]
}

// Count returns the number of checked rows.
func (c *Controller[T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.checkMap)
}

// Len returns the number of rows in the source.
func (c *Controller[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.source)
}

// Snapshot is a consistent copy of a Controller's state.
type Snapshot[T any] struct {
	Source     []T
	Status     []bool
	Checked    []T
	AllChecked bool
}

// Snapshot copies the source and checked state under one lock.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot[T]{
		Source:     append([]T{}, c.source...),
		Status:     append([]bool{}, c.checked...),
		Checked:    make([]T, 0, len(c.checkMap)),
		AllChecked: c.allChecked,
	}
	for i, on := range c.checked {
		if on {
			snap.Checked = append(snap.Checked, c.source[i])
		}
	}
	return snap
}

// ToggleAll unchecks every row when all are checked, otherwise checks every row.
func (c *Controller[T]) ToggleAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.checkMap)
	on := !c.allChecked
	for i := range c.checked {
		c.checked[i] = on
		if on {
			c.checkMap[i] = c.source[i]
		}
	}
	c.updateAllChecked()
}

// Toggle flips the state of row index.
func (c *Controller[T]) Toggle(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.checked) {
		return fmt.Errorf("toggle row %d of %d: %w", index, len(c.checked), ErrIndexOutOfRange)
	}

	if c.checked[index] {
		delete(c.checkMap, index)
	} else {
		c.checkMap[index] = c.source[index]
	}
	c.checked[index] = !c.checked[index]
	c.updateAllChecked()
	return nil
}
