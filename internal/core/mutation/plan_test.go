package mutation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ ID string }

func TestPlan_PreservesOrder(t *testing.T) {
	var p Plan
	assert.True(t, p.IsEmpty())

	first, second, third := &row{"a"}, &row{"b"}, &row{"c"}
	p.Create(first).Create(second).Delete(third)

	require.Equal(t, 3, p.Len())
	assert.False(t, p.IsEmpty())
	assert.Equal(t, Write{Op: OpCreate, Entity: first}, p.Writes[0])
	assert.Equal(t, Write{Op: OpCreate, Entity: second}, p.Writes[1])
	assert.Equal(t, Write{Op: OpDelete, Entity: third}, p.Writes[2])
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "unknown", Op(0).String())
}

func TestDefaultEnv(t *testing.T) {
	env := DefaultEnv()

	id := env.NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, env.NewID())

	now := env.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
