// Package store implements the persistence collaborator for routines and
// materialized instances.
//
// Documents are JSON files under the data directory, managed by diskv.
// Queue documents are read whole on edit-session start and written back
// whole on submit; there is no partial-update protocol. Instance documents
// are produced by the generator side and are read-only here except for the
// single progress mutation, whose status change becomes visible on the
// next read.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/rota/internal/clock"
	"github.com/mrz1836/rota/internal/ctxutil"
	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/routine"
	"github.com/mrz1836/rota/internal/schedule"
)

const (
	// routinePrefix namespaces routine documents.
	routinePrefix = "routine"
	// instancePrefix namespaces instance documents.
	instancePrefix = "instance"
	// DateKey is the calendar-date layout used in instance keys.
	DateKey = "2006-01-02"
	// cacheSizeMax bounds diskv's in-memory cache.
	cacheSizeMax = 1024 * 1024 // 1MB
	// maxConcurrentReads bounds parallel instance document reads.
	maxConcurrentReads = 16
)

// Routine is a stored routine with its queue already migrated to the
// current shape.
type Routine struct {
	// ID is the routine identifier.
	ID string
	// Name is the routine's display name.
	Name string
	// Description is optional free text.
	Description string
	// Queue is the rotation, in the current schema.
	Queue routine.Queue
}

// routineDoc is the wire shape of a stored routine.
type routineDoc struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Queue       routine.Document `json:"queue"`
}

// Store persists routine and instance documents on disk.
type Store struct {
	d   *diskv.Diskv
	dir string
	clk clock.Clock
}

// Open creates a Store rooted at the given data directory.
func Open(dataDir string, clk clock.Clock) *Store {
	return &Store{
		dir: dataDir,
		d: diskv.New(diskv.Options{
			BasePath:          dataDir,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      cacheSizeMax,
		}),
		clk: clk,
	}
}

// keyToPath maps "prefix/.../name" keys onto nested directories.
func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	last := len(parts) - 1
	return &diskv.PathKey{
		Path:     parts[:last],
		FileName: parts[last] + ".json",
	}
}

// pathToKey is the inverse of keyToPath.
func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json")
	return strings.Join(append(append([]string{}, pk.Path...), name), "/")
}

// SaveRoutine writes the routine and its queue back whole, under the data
// directory lock.
func (s *Store) SaveRoutine(ctx context.Context, r Routine) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("%w: routine id is required", rotaerrors.ErrEmptyValue)
	}

	doc := routineDoc{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Queue:       routine.NewDocument(r.Queue),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return rotaerrors.Wrap(err, "failed to encode routine")
	}
	return s.withLock(func() error {
		return rotaerrors.Wrapf(s.d.Write(routinePrefix+"/"+r.ID, data), "failed to write routine %s", r.ID)
	})
}

// LoadRoutine reads one routine, migrating its queue to the current shape.
func (s *Store) LoadRoutine(_ context.Context, routineID string) (Routine, error) {
	data, err := s.d.Read(routinePrefix + "/" + routineID)
	if err != nil {
		return Routine{}, fmt.Errorf("%w: %s", rotaerrors.ErrRoutineNotFound, routineID)
	}
	return decodeRoutine(data)
}

// decodeRoutine unmarshals a routine document and migrates its queue.
func decodeRoutine(data []byte) (Routine, error) {
	var doc routineDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Routine{}, rotaerrors.Wrap(err, "failed to decode routine")
	}
	q, err := routine.Migrate(doc.Queue)
	if err != nil {
		return Routine{}, rotaerrors.Wrapf(err, "routine %s", doc.ID)
	}
	return Routine{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Queue:       q,
	}, nil
}

// ListRoutines reads every stored routine, sorted by name.
func (s *Store) ListRoutines(ctx context.Context) ([]Routine, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	var out []Routine
	for key := range s.d.KeysPrefix(routinePrefix+"/", ctx.Done()) {
		data, err := s.d.Read(key)
		if err != nil {
			return nil, rotaerrors.Wrapf(err, "failed to read %s", key)
		}
		r, err := decodeRoutine(data)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveInstances stores materialized routine instances, keyed by due date.
// The generator side calls this; tests and fixtures use it directly.
func (s *Store) SaveInstances(ctx context.Context, instances []schedule.RoutineInstance) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	return s.withLock(func() error {
		for _, inst := range instances {
			if inst.ID == "" {
				return fmt.Errorf("%w: instance id is required", rotaerrors.ErrEmptyValue)
			}
			data, err := json.MarshalIndent(inst, "", "  ")
			if err != nil {
				return rotaerrors.Wrapf(err, "failed to encode instance %s", inst.ID)
			}
			key := instanceKey(inst.DueDate, inst.ID)
			if err := s.d.Write(key, data); err != nil {
				return rotaerrors.Wrapf(err, "failed to write instance %s", inst.ID)
			}
		}
		return nil
	})
}

// instanceKey builds the storage key for an instance document.
func instanceKey(dueDate time.Time, id string) string {
	return instancePrefix + "/" + dueDate.Format(DateKey) + "/" + id
}

// Instances reads every routine instance due in [from, to], inclusive,
// with bounded concurrency. Results are ordered by due date, then routine
// name.
func (s *Store) Instances(ctx context.Context, from, to time.Time) ([]schedule.RoutineInstance, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		prefix := instancePrefix + "/" + d.Format(DateKey) + "/"
		for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
			keys = append(keys, key)
		}
	}

	out := make([]schedule.RoutineInstance, len(keys))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, key := range keys {
		g.Go(func() error {
			data, err := s.d.Read(key)
			if err != nil {
				return rotaerrors.Wrapf(err, "failed to read %s", key)
			}
			if err := json.Unmarshal(data, &out[i]); err != nil {
				return rotaerrors.Wrapf(err, "failed to decode %s", key)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].RoutineName < out[j].RoutineName
	})
	return out, nil
}

// RecordProgress applies the single occurrence mutation: a new progress
// value, resolved into a status change. YES_NO occurrences complete on any
// positive value; NUMERIC occurrences complete when the value reaches the
// target. The change is only observable on the next read.
func (s *Store) RecordProgress(ctx context.Context, occurrenceID string, value float64) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	return s.withLock(func() error {
		for key := range s.d.KeysPrefix(instancePrefix+"/", ctx.Done()) {
			data, err := s.d.Read(key)
			if err != nil {
				return rotaerrors.Wrapf(err, "failed to read %s", key)
			}
			var inst schedule.RoutineInstance
			if err := json.Unmarshal(data, &inst); err != nil {
				return rotaerrors.Wrapf(err, "failed to decode %s", key)
			}

			for i := range inst.Occurrences {
				if inst.Occurrences[i].ID != occurrenceID {
					continue
				}
				applyProgress(&inst.Occurrences[i], value, s.clk.Now())

				updated, err := json.MarshalIndent(inst, "", "  ")
				if err != nil {
					return rotaerrors.Wrapf(err, "failed to encode instance %s", inst.ID)
				}
				return rotaerrors.Wrapf(s.d.Write(key, updated), "failed to write %s", key)
			}
		}
		return fmt.Errorf("%w: %s", rotaerrors.ErrOccurrenceNotFound, occurrenceID)
	})
}

// applyProgress resolves a progress value into occurrence state.
func applyProgress(occ *schedule.Occurrence, value float64, now time.Time) {
	completed := false
	switch occ.EvaluationMethod {
	case routine.EvaluationNumeric:
		if occ.TargetValue != nil && *occ.TargetValue > 0 {
			pct := int(value / *occ.TargetValue * 100)
			if pct > 100 {
				pct = 100
			}
			if pct < 0 {
				pct = 0
			}
			occ.Progress = pct
			completed = value >= *occ.TargetValue
		}
	default: // YES_NO
		completed = value > 0
		if completed {
			occ.Progress = 100
		}
	}

	if completed {
		occ.Status = schedule.RawCompleted
		ts := now
		occ.CompletionTimestamp = &ts
	}
}
