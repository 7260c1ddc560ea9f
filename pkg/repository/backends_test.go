package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/repository/firestore"
	"github.com/availiq/availiq/pkg/repository/memory"
)

// newMemoryRepo returns a fresh in-memory backend
func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

// newFirestoreRepo returns a Firestore backend with a unique collection
// prefix per test. Skipped unless FIRESTORE_PROJECT_ID is set.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, databaseID,
		firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore repository: %v", err)
		}
	})

	return repo
}

func runBackends(t *testing.T, run func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Helper()

	t.Run("Memory", func(t *testing.T) {
		run(t, newMemoryRepo)
	})

	t.Run("Firestore", func(t *testing.T) {
		run(t, newFirestoreRepo)
	})
}
