package main

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helper-match-engine/internal/models"
)

func TestMemoryJobStore_ConcurrentAdd(t *testing.T) {
	store := newMemoryJobStore(nil)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Add(&models.JobRecord{ID: fmt.Sprintf("job-%d-%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, store.All(), writers*perWriter)
}

func TestMemoryJobStore_ConcurrentReadWrite(t *testing.T) {
	store := newMemoryJobStore(sampleJobs())

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Add(&models.JobRecord{ID: fmt.Sprintf("job-%d-%d", w, i)})
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = store.All()
				_, _ = store.GetByID(context.Background(), "job-demo-1")
			}
		}()
	}
	wg.Wait()

	job, err := store.GetByID(context.Background(), "job-demo-1")
	require.NoError(t, err)
	assert.Equal(t, "job-demo-1", job.ID)
}

func TestMemoryJobStore_AddReplacesExisting(t *testing.T) {
	store := newMemoryJobStore(nil)

	store.Add(&models.JobRecord{ID: "job-1", Title: "Original"})
	store.Add(&models.JobRecord{ID: "job-1", Title: "Updated"})

	assert.Len(t, store.All(), 1)

	job, err := store.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", job.Title)
}

func TestMemoryHelperStore_ConcurrentAdd(t *testing.T) {
	store := newMemoryHelperStore(nil)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Add(&models.HelperRecord{ID: fmt.Sprintf("helper-%d-%d", w, i)})
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.All()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.All(), writers*perWriter)
}

func TestMemoryHelperStore_AllReturnsSnapshot(t *testing.T) {
	store := newMemoryHelperStore(sampleHelpers())

	snapshot := store.All()
	store.Add(&models.HelperRecord{ID: "helper-new"})

	assert.Len(t, snapshot, len(sampleHelpers()))
	assert.Len(t, store.All(), len(sampleHelpers())+1)
}
