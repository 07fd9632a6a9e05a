package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xelar/internal/clock"
	"xelar/internal/domain"
)

func startRegistry(t *testing.T, fake *clock.Fake) *Registry {
	t.Helper()
	r := NewRegistry(Config{Clock: fake})
	require.NoError(t, r.Start(context.Background()))
	t.Cleanup(r.Shutdown)
	return r
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	r := startRegistry(t, fake)

	for i := 0; i < 5; i++ {
		r.Add(fmt.Sprintf("message %d", i), domain.NotifySuccess)
	}

	list := r.List()
	require.Len(t, list, 5)
	for i, n := range list {
		assert.Equal(t, fmt.Sprintf("message %d", i), n.Message)
	}
}

func TestKindDefaultsToSuccess(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	r := startRegistry(t, fake)

	r.Add("saved", "")
	r.Add("gone wrong", domain.NotifyError)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, domain.NotifySuccess, list[0].Kind)
	assert.Equal(t, domain.NotifyError, list[1].Kind)
}

func TestEvictionAfterTTL(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	r := startRegistry(t, fake)

	r.Add("first", domain.NotifyInfo)
	r.Add("second", domain.NotifyInfo)
	require.Len(t, r.List(), 2)

	// just short of the TTL nothing is evicted
	fake.Advance(DefaultTTL - 100*time.Millisecond)
	assert.Len(t, r.List(), 2)

	fake.Advance(100 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return len(r.List()) == 0
	}, time.Second, time.Millisecond)
}

func TestStaggeredEviction(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	r := startRegistry(t, fake)

	r.Add("early", domain.NotifySuccess)
	fake.Advance(time.Second)
	r.Add("late", domain.NotifySuccess)

	fake.Advance(DefaultTTL - time.Second)
	assert.Eventually(t, func() bool {
		list := r.List()
		return len(list) == 1 && list[0].Message == "late"
	}, time.Second, time.Millisecond)

	fake.Advance(time.Second)
	assert.Eventually(t, func() bool {
		return len(r.List()) == 0
	}, time.Second, time.Millisecond)
}

func TestShutdownStopsCoordinator(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	r := NewRegistry(Config{Clock: fake})
	require.NoError(t, r.Start(context.Background()))

	r.Add("pending", domain.NotifySuccess)
	r.Shutdown()

	// entries added before shutdown stay observable; nothing panics
	assert.Len(t, r.List(), 1)
}
