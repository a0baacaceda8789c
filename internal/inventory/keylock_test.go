package inventory

import (
	"context"
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockTableSerializesSameKey(t *testing.T) {
	table := newLockTable()
	ctx := context.Background()

	release, err := table.acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := table.acquire(ctx, "k", 2*time.Second)
		if err == nil {
			close(acquired)
			r()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while lock held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never got the lock after release")
	}
}

func TestLockTableDifferentKeysDoNotBlock(t *testing.T) {
	table := newLockTable()
	ctx := context.Background()

	r1, err := table.acquire(ctx, "a", time.Second)
	require.NoError(t, err)
	defer r1()

	r2, err := table.acquire(ctx, "b", 50*time.Millisecond)
	require.NoError(t, err)
	r2()
}

func TestLockTableTimeoutIsBusy(t *testing.T) {
	table := newLockTable()
	ctx := context.Background()

	release, err := table.acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	defer release()

	_, err = table.acquire(ctx, "k", 20*time.Millisecond)
	assert.True(t, domain.IsBusy(err), "expected busy error, got %v", err)
}

func TestLockTableHonoursContextCancel(t *testing.T) {
	table := newLockTable()

	release, err := table.acquire(context.Background(), "k", time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = table.acquire(ctx, "k", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLockTableEntriesAreReclaimed(t *testing.T) {
	table := newLockTable()

	release, err := table.acquire(context.Background(), "k", time.Second)
	require.NoError(t, err)
	release()

	table.mu.Lock()
	defer table.mu.Unlock()
	assert.Empty(t, table.entries)
}
