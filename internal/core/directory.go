package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/phonebook/internal/model"
)

// ConfirmFunc is the deletion gate. It receives the record about to be
// deleted and reports whether the user agreed.
type ConfirmFunc func(record model.Record) bool

// Directory mirrors the remote store and mediates all reads and writes.
//
// The mirror is replaced wholesale by every successful read and never
// patched locally; each successful change is followed by a full read.
// Mutations are single-flight: a change started while another is still
// running fails with ErrOperationInFlight.
type Directory struct {
	remote RemoteStore
	logger *slog.Logger

	mu         sync.RWMutex
	mirror     []model.Record
	loaded     bool
	lastSync   time.Time
	appliedSeq uint64

	readSeq atomic.Uint64
	busy    atomic.Bool
}

// DirectoryOptions configures a Directory
type DirectoryOptions struct {
	Logger *slog.Logger
}

// NewDirectory creates a directory with an empty mirror backed by remote.
func NewDirectory(remote RemoteStore, opts DirectoryOptions) *Directory {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Directory{
		remote: remote,
		logger: logger,
	}
}

// Records returns a copy of the mirror.
func (d *Directory) Records() []model.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Clone(d.mirror)
}

// Len returns the number of records in the mirror.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.mirror)
}

// Record returns the mirrored record at rowIndex.
func (d *Directory) Record(rowIndex int) (model.Record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if rowIndex < 0 || rowIndex >= len(d.mirror) {
		return model.Record{}, false
	}

	return d.mirror[rowIndex], true
}

// Loaded reports whether at least one read has succeeded.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.loaded
}

// LastSync returns the time the mirror was last replaced.
func (d *Directory) LastSync() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.lastSync
}

// Busy reports whether a change is in flight.
func (d *Directory) Busy() bool {
	return d.busy.Load()
}

// Read fetches the full list and replaces the mirror. On failure the mirror
// is left unchanged and a *FetchError is returned.
//
// Each read takes a sequence number when it starts. A response is applied
// only if no newer read has been applied already, so an overlapping older
// read can never overwrite a fresher mirror.
func (d *Directory) Read(ctx context.Context) error {
	seq := d.readSeq.Add(1)
	logger := d.logger.With(slog.String("op", "read"), slog.String("op_id", uuid.NewString()), slog.Uint64("seq", seq))

	logger.Debug("reading directory")

	records, err := d.remote.Read(ctx)
	if err != nil {
		logger.Debug("read failed", slog.String("error", err.Error()))

		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			return &FetchError{Err: errors.New(remoteErr.Reason)}
		}

		return &FetchError{Err: err}
	}

	for i := range records {
		records[i].RowIndex = i
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq < d.appliedSeq {
		logger.Debug("discarding stale read", slog.Uint64("applied_seq", d.appliedSeq))
		return nil
	}

	d.mirror = records
	d.appliedSeq = seq
	d.loaded = true
	d.lastSync = time.Now()

	logger.Debug("mirror replaced", slog.Int("records", len(records)))

	return nil
}

// Add validates draft, submits it, and resynchronizes on success.
func (d *Directory) Add(ctx context.Context, draft model.Record) error {
	if err := ValidateDraft(draft); err != nil {
		return err
	}

	return d.mutate(ctx, ActionAdd, func(ctx context.Context) error {
		return d.remote.Add(ctx, draft)
	})
}

// Update validates draft and replaces the row at rowIndex. rowIndex is
// positional: if rows shifted since the last read the wrong row is changed.
func (d *Directory) Update(ctx context.Context, rowIndex int, draft model.Record) error {
	if err := validateRowIndex(rowIndex); err != nil {
		return err
	}

	if err := ValidateDraft(draft); err != nil {
		return err
	}

	return d.mutate(ctx, ActionUpdate, func(ctx context.Context) error {
		return d.remote.Update(ctx, rowIndex, draft)
	})
}

// Delete removes the row at rowIndex after confirm agrees. A nil confirm is
// treated as a refusal.
func (d *Directory) Delete(ctx context.Context, rowIndex int, confirm ConfirmFunc) error {
	if err := validateRowIndex(rowIndex); err != nil {
		return err
	}

	if d.Busy() {
		return ErrOperationInFlight
	}

	target, ok := d.Record(rowIndex)
	if !ok {
		target = model.Record{RowIndex: rowIndex}
	}

	if confirm == nil || !confirm(target) {
		return ErrNotConfirmed
	}

	return d.mutate(ctx, ActionDelete, func(ctx context.Context) error {
		return d.remote.Delete(ctx, rowIndex)
	})
}

// mutate runs a change under the in-flight guard and follows a successful
// change with a full read. The guard is held until that read finishes.
func (d *Directory) mutate(ctx context.Context, action Action, submit func(context.Context) error) error {
	if !d.busy.CompareAndSwap(false, true) {
		return ErrOperationInFlight
	}
	defer d.busy.Store(false)

	logger := d.logger.With(slog.String("op", string(action)), slog.String("op_id", uuid.NewString()))
	logger.Debug("submitting change")

	if err := submit(ctx); err != nil {
		logger.Debug("change failed", slog.String("error", err.Error()))

		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			return &MutationError{Action: action, Reason: remoteErr.Reason}
		}

		return &TransportError{Action: action, Err: err}
	}

	if err := d.Read(ctx); err != nil {
		return fmt.Errorf("%s applied but refresh failed: %w", action, err)
	}

	return nil
}

// ValidateDraft checks that location, extension and username are all
// non-empty. Values are taken as typed, so whitespace counts as content.
func ValidateDraft(draft model.Record) error {
	var missing []string

	if draft.Location == "" {
		missing = append(missing, "location")
	}

	if draft.Extension == "" {
		missing = append(missing, "extension")
	}

	if draft.Username == "" {
		missing = append(missing, "username")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	return nil
}

func validateRowIndex(rowIndex int) error {
	if rowIndex < 0 {
		return &ValidationError{Fields: []string{"rowIndex"}, Reason: fmt.Sprintf("row index %d is negative", rowIndex)}
	}

	return nil
}
