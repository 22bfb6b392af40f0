package storage

import (
	"github.com/jmoiron/sqlx"
	"github.com/nootencorp/worklog/internal/entry"
)

// Cursor is a lazy, single-pass sequence of entries produced by a query.
// Rows are read from the database as Next is called. A cursor cannot be
// restarted; run the query again for a fresh one.
//
//	c, err := store.ByEmployee("Ann")
//	...
//	defer c.Close()
//	for c.Next() {
//		e := c.Entry()
//	}
//	if err := c.Err(); err != nil { ... }
type Cursor struct {
	rows   *sqlx.Rows
	cur    entry.Entry
	err    error
	closed bool
}

// Next advances to the next entry. It returns false when the sequence is
// exhausted, an error occurred, or the cursor was closed.
func (c *Cursor) Next() bool {
	if c.closed || c.err != nil {
		return false
	}

	if !c.rows.Next() {
		c.err = c.rows.Err()
		_ = c.Close()
		return false
	}

	var r row
	if err := c.rows.StructScan(&r); err != nil {
		c.err = err
		_ = c.Close()
		return false
	}

	e, err := r.toEntry()
	if err != nil {
		c.err = err
		_ = c.Close()
		return false
	}
	c.cur = e
	return true
}

// Entry returns the entry at the current position.
func (c *Cursor) Entry() entry.Entry {
	return c.cur
}

// Err returns the first error encountered while iterating.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the underlying rows. Safe to call more than once.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

// Collect drains c into a slice and closes it.
func Collect(c *Cursor) ([]entry.Entry, error) {
	defer func() { _ = c.Close() }()

	entries := []entry.Entry{}
	for c.Next() {
		entries = append(entries, c.Entry())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
