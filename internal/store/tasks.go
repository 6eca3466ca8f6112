package store

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"tudu-cli/internal/model"
)

var (
	// ErrNotReady means the database failed to open (or was never opened).
	// Callers surface this to the user; nothing is queued or retried.
	ErrNotReady = errors.New("task database is not ready; reopen the store and try again")

	// ErrEmptyText rejects labels that trim to nothing before any write.
	ErrEmptyText = errors.New("task text is empty")

	ErrTaskNotFound = errors.New("task not found")
)

// List returns every task sorted by display order ascending; tasks without
// an order sort last (ties broken by id for a stable result). No filtering.
func (db *DB) List(ctx context.Context) ([]model.Task, error) {
	if !db.Ready() {
		return nil, ErrNotReady
	}
	rows, err := db.sql.QueryContext(ctx, `SELECT id, text, done, display_order FROM tasks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].OrderValue(), out[j].OrderValue()
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Count returns the number of stored tasks.
func (db *DB) Count(ctx context.Context) (int, error) {
	if !db.Ready() {
		return 0, ErrNotReady
	}
	var n int
	if err := db.sql.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Add creates a task with a fresh clock-derived id, done=false and
// order=current count. The count read runs in its own read transaction and
// strictly precedes the dependent insert transaction, so the new task's
// order reflects the store size at add time.
func (db *DB) Add(ctx context.Context, text string) (model.Task, error) {
	if !db.Ready() {
		return model.Task{}, ErrNotReady
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}

	count, err := db.countTx(ctx)
	if err != nil {
		return model.Task{}, err
	}

	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Unix-millisecond ids collide when two adds land in the same
	// millisecond; bump until the key is free. The whole probe+insert is
	// one transaction so the bump cannot race another writer.
	id := time.Now().UnixMilli()
	for {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks WHERE id = ?`, id).Scan(&exists); err != nil {
			return model.Task{}, err
		}
		if exists == 0 {
			break
		}
		id++
	}

	order := int64(count)
	t := model.Task{ID: id, Text: text, Done: false, Order: &order}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tasks(id, text, done, display_order) VALUES(?, ?, ?, ?)`,
		t.ID, t.Text, boolToInt(t.Done), order,
	); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Toggle flips done and writes the full record back (an overwrite, not a
// partial patch). The returned task carries the new done value.
func (db *DB) Toggle(ctx context.Context, t model.Task) (model.Task, error) {
	if !db.Ready() {
		return t, ErrNotReady
	}
	t.Done = !t.Done
	if err := db.put(ctx, t); err != nil {
		return t, err
	}
	return t, nil
}

// UpdateText replaces a task's label in place, keeping done and order.
func (db *DB) UpdateText(ctx context.Context, id int64, text string) (model.Task, error) {
	if !db.Ready() {
		return model.Task{}, ErrNotReady
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}

	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return model.Task{}, err
	}
	t.Text = text
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO tasks(id, text, done, display_order) VALUES(?, ?, ?, ?)`,
		t.ID, t.Text, boolToInt(t.Done), orderArg(t),
	); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Delete removes a task by key. Deleting an id that is not present is a
// no-op, not an error.
func (db *DB) Delete(ctx context.Context, id int64) error {
	if !db.Ready() {
		return ErrNotReady
	}
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Reorder persists a new display order: each id in idsInVisualOrder gets
// order = its position in the sequence. All updates share one transaction.
// Ids no longer present in the store are skipped without failing the whole
// operation (the visual order is authoritative at drop time; a concurrently
// deleted row should not abort the rest).
func (db *DB) Reorder(ctx context.Context, idsInVisualOrder []int64) error {
	if !db.Ready() {
		return ErrNotReady
	}
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for pos, id := range idsInVisualOrder {
		t, err := getTask(ctx, tx, id)
		if errors.Is(err, ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		order := int64(pos)
		t.Order = &order
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO tasks(id, text, done, display_order) VALUES(?, ?, ?, ?)`,
			t.ID, t.Text, boolToInt(t.Done), order,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (db *DB) put(ctx context.Context, t model.Task) error {
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO tasks(id, text, done, display_order) VALUES(?, ?, ?, ?)`,
		t.ID, t.Text, boolToInt(t.Done), orderArg(t),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) countTx(ctx context.Context) (int, error) {
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func getTask(ctx context.Context, tx *sql.Tx, id int64) (model.Task, error) {
	row := tx.QueryRowContext(ctx, `SELECT id, text, done, display_order FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrTaskNotFound
	}
	return t, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (model.Task, error) {
	var t model.Task
	var done int
	var order sql.NullInt64
	if err := r.Scan(&t.ID, &t.Text, &done, &order); err != nil {
		return model.Task{}, err
	}
	t.Done = done != 0
	if order.Valid {
		v := order.Int64
		t.Order = &v
	}
	return t, nil
}

func orderArg(t model.Task) any {
	if t.Order == nil {
		return nil
	}
	return *t.Order
}
