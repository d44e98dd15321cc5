package history

import (
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapOrder(t *testing.T) {
	b := New[string](3)
	b.Add("r1")
	b.Add("r2")
	b.Add("r3")

	got := slices.Collect(b.All())
	if diff := cmp.Diff([]string{"r3", "r1", "r2"}, got); diff != "" {
		t.Errorf("traversal mismatch (-want +got):\n%s", diff)
	}
}

func TestTraversal(t *testing.T) {
	tests := []struct {
		name string
		cap  int
		adds []int
		want []int
	}{
		{name: "empty", cap: 4, adds: nil, want: nil},
		{name: "one", cap: 4, adds: []int{1}, want: []int{1}},
		{name: "partial", cap: 4, adds: []int{1, 2}, want: []int{2, 1}},
		{name: "partial wraps onto unwritten slot", cap: 4, adds: []int{1, 2, 3}, want: []int{3, 1, 2}},
		{name: "full", cap: 4, adds: []int{1, 2, 3, 4}, want: []int{4, 1, 2, 3}},
		{name: "overflow", cap: 4, adds: []int{1, 2, 3, 4, 5, 6}, want: []int{6, 3, 4, 5}},
		{name: "capacity one", cap: 1, adds: []int{1, 2, 3}, want: []int{3}},
		{name: "many laps", cap: 3, adds: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, want: []int{10, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int](tt.cap)
			for _, v := range tt.adds {
				b.Add(v)
			}
			got := slices.Collect(b.All())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("traversal mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, min(len(tt.adds), tt.cap), b.Len())
		})
	}
}

func TestPartialFillUsesCursorArithmetic(t *testing.T) {
	b := New[int](4)
	b.Add(1)
	b.Add(2)
	b.Add(3)

	// slots: [_, 1, 2, 3], cursor at 3
	want := []struct {
		v  int
		ok bool
	}{{3, true}, {0, false}, {1, true}, {2, true}}
	for i, w := range want {
		v, ok := b.Get(i)
		assert.Equal(t, w.ok, ok, "index %d", i)
		assert.Equal(t, w.v, v, "index %d", i)
	}
}

func TestLatest(t *testing.T) {
	b := New[int](5)
	_, ok := b.Latest()
	assert.False(t, ok)

	for k := 1; k <= 12; k++ {
		b.Add(k * 10)
		v, ok := b.Latest()
		require.True(t, ok)
		assert.Equal(t, k*10, v)

		first, ok := b.Get(0)
		require.True(t, ok)
		assert.Equal(t, v, first)
	}
}

func TestGetOutOfRange(t *testing.T) {
	for _, capacity := range []int{1, 2, 7} {
		b := New[int](capacity)
		for k := 0; k <= 2*capacity; k++ {
			for _, i := range []int{capacity, capacity + 1, 10 * capacity, -1} {
				_, ok := b.Get(i)
				assert.False(t, ok, "cap=%d adds=%d i=%d", capacity, k, i)
			}
			b.Add(k)
		}
	}
}

func TestAllIsRestartable(t *testing.T) {
	b := New[int](3)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	seq := b.All()

	for v := range seq {
		assert.Equal(t, 3, v)
		break
	}
	assert.Equal(t, []int{3, 1, 2}, slices.Collect(seq))
	assert.Equal(t, []int{3, 1, 2}, slices.Collect(seq))
}

func TestCapacityIsFixed(t *testing.T) {
	b := New[int](3)
	for i := 0; i < 100; i++ {
		b.Add(i)
	}
	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, 3, b.Len())
	assert.Len(t, b.slots, 3)
}

func TestNewRejectsZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}

type pair struct {
	seq     int
	doubled int
	label   string
}

func TestSharedNoTornReads(t *testing.T) {
	s := NewShared[pair](8)
	const writes = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= writes; i++ {
			s.Add(pair{seq: i, doubled: 2 * i, label: "reading"})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for last < writes {
				p, ok := s.Latest()
				if !ok {
					continue
				}
				if p.doubled != 2*p.seq || p.label != "reading" {
					t.Errorf("torn read: %+v", p)
					return
				}
				if p.seq < last {
					t.Errorf("latest went backwards: %d after %d", p.seq, last)
					return
				}
				last = p.seq
				for _, q := range s.Snapshot() {
					if q.doubled != 2*q.seq {
						t.Errorf("torn snapshot entry: %+v", q)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap, 8)
	assert.Equal(t, writes, snap[0].seq)
	assert.Equal(t, writes-7, snap[1].seq)
}

func TestSharedGet(t *testing.T) {
	s := NewShared[int](2)
	assert.Equal(t, 2, s.Cap())
	assert.Empty(t, s.Snapshot())
	s.Add(1)
	s.Add(2)
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = s.Get(2)
	assert.False(t, ok)
}
