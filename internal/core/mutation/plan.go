package mutation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Op is the kind of a single write in a plan.
type Op int

const (
	OpCreate Op = iota + 1
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Write is one row-level change. Entity is a pointer to a persisted model.
type Write struct {
	Entity any
	Op     Op
}

// Plan is an ordered list of writes that must commit together or not at all.
// Plans are built by pure functions and submitted to an Applier.
type Plan struct {
	Writes []Write
}

// Create appends a create write.
func (p *Plan) Create(entity any) *Plan {
	p.Writes = append(p.Writes, Write{Op: OpCreate, Entity: entity})
	return p
}

// Delete appends a delete write. The entity's primary key identifies the row.
func (p *Plan) Delete(entity any) *Plan {
	p.Writes = append(p.Writes, Write{Op: OpDelete, Entity: entity})
	return p
}

// Len returns the number of writes.
func (p Plan) Len() int {
	return len(p.Writes)
}

// IsEmpty reports whether the plan has no writes.
func (p Plan) IsEmpty() bool {
	return len(p.Writes) == 0
}

// Applier executes a plan atomically.
type Applier interface {
	Apply(ctx context.Context, plan Plan) error
}

// ErrConflict is returned by an Applier when a create write hits a
// uniqueness constraint.
var ErrConflict = errors.New("mutation conflicts with an existing row")

// Env supplies identifiers and timestamps to planners so plans stay
// deterministic under test.
type Env struct {
	NewID func() string
	Now   func() time.Time
}

// DefaultEnv generates random UUIDs and UTC wall-clock time.
func DefaultEnv() Env {
	return Env{
		NewID: uuid.NewString,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}
