package seed

import (
	"context"
	"testing"

	"daycare-log/internal/adapters/storage"
	"daycare-log/internal/adapters/storage/memory"
	"daycare-log/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svcs := router.NewServices(storage.From(memory.NewStore()), nil)

	require.NoError(t, Demo(ctx, svcs, nil))
	require.NoError(t, Demo(ctx, svcs, nil))

	rooms, err := svcs.Classrooms.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	kids, err := svcs.Children.ListByClassroom(ctx, rooms[0].ID)
	require.NoError(t, err)
	assert.Len(t, kids, 2)

	mine, err := svcs.Children.ListByGuardian(ctx, ParentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Alma", mine[0].FirstName)
}
