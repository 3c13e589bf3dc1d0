package repository

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableClient(t *testing.T) *firestore.Client {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")

	client, err := firestore.NewClient(context.Background(), "test-project")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// A store failure must propagate as an error, not read as "no invite": the
// registration gate would otherwise turn an outage into a 403 for the patient.
func TestInviteRegistered_PropagatesStoreErrors(t *testing.T) {
	repo := NewPatientRepository(unreachableClient(t))

	// Unary Gets retry Unavailable indefinitely under context.Background(),
	// so bound the context to let the store error surface (review F3).
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, found, err := repo.InviteRegistered(ctx, "ana@example.com")
	assert.Error(t, err)
	assert.False(t, found)
}
