package watcher

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slices.Sort(paths)
	r.batches = append(r.batches, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.batches)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Add("src/a.mod")
	d.Add("src/b.mod")
	d.Add("src/a.mod")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"src/a.mod", "src/b.mod"}, rec.snapshot()[0])
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)

	d.Add("src/a.mod")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	d.Add("src/b.mod")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	batches := rec.snapshot()
	assert.Equal(t, []string{"src/a.mod"}, batches[0])
	assert.Equal(t, []string{"src/b.mod"}, batches[1])
}

func TestDebouncer_FlushDeliversSynchronously(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.record)

	d.Add("src/a.mod")
	d.Flush()

	batches := rec.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"src/a.mod"}, batches[0])
}

func TestDebouncer_FlushWithoutPending(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.record)

	d.Flush()
	assert.Empty(t, rec.snapshot())
}
