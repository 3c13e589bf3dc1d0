package repository

import (
	"context"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient returns a client whose every RPC fails: nothing listens on
// port 1, so batched writes are rejected store-side instead of locally.
func unreachableClient(t *testing.T) *firestore.Client {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")

	client, err := firestore.NewClient(context.Background(), "test-project")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestDeleteAll_SurfacesFailedWrites(t *testing.T) {
	client := unreachableClient(t)
	repo := NewCascadeRepository(client, NewUserRepository(client))

	refs := []*firestore.DocumentRef{
		client.Collection("pacientes").Doc("ana@example.com"),
		client.Collection("physio_patients").Doc("ana@example.com_p1"),
	}

	err := repo.deleteAll(context.Background(), refs)
	assert.Error(t, err, "rejected deletes must not report success")
}

func TestDeleteAll_EmptyRefsIsNoop(t *testing.T) {
	client := unreachableClient(t)
	repo := NewCascadeRepository(client, NewUserRepository(client))

	assert.NoError(t, repo.deleteAll(context.Background(), nil))
}
