package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHitAndMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := Availability{Client: client}
	ctx := context.Background()

	mock.ExpectGet(Key(1, "2026-09-15")).SetVal("[1,2,3]")
	seats, ok := c.Get(ctx, 1, "2026-09-15")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, seats)

	mock.ExpectGet(Key(2, "2026-09-15")).RedisNil()
	_, ok = c.Get(ctx, 2, "2026-09-15")
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIgnoresCorruptEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := Availability{Client: client}

	mock.ExpectGet(Key(1, "2026-09-15")).SetVal("not-json")
	_, ok := c.Get(context.Background(), 1, "2026-09-15")
	assert.False(t, ok)
}

func TestSetUsesConfiguredTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := Availability{Client: client, TTL: 10 * time.Second}

	mock.ExpectSet(Key(1, "2026-09-15"), []byte("[4,5]"), 10*time.Second).SetVal("OK")
	c.Set(context.Background(), 1, "2026-09-15", []int{4, 5})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateDeletesKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := Availability{Client: client}

	mock.ExpectDel(Key(1, "2026-09-15")).SetVal(1)
	c.Invalidate(context.Background(), 1, "2026-09-15")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNilClientIsNoop(t *testing.T) {
	c := Availability{}
	ctx := context.Background()

	_, ok := c.Get(ctx, 1, "2026-09-15")
	assert.False(t, ok)
	c.Set(ctx, 1, "2026-09-15", []int{1})
	c.Invalidate(ctx, 1, "2026-09-15")
}
