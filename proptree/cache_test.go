package proptree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptorBuildsOnlyOnce(t *testing.T) {
	var calls int
	d := NewDescriptor(func() ([]PropertyRecord, KeyEndpointMap) {
		calls++
		return flatRecords(), nil
	})

	first := d.Tree()
	second := d.Tree()
	require.Same(t, first, second)
	require.Equal(t, 1, calls)
}

func TestDescriptorConcurrentFirstUseBuildsOnce(t *testing.T) {
	var calls int
	var mu sync.Mutex
	d := NewDescriptor(func() ([]PropertyRecord, KeyEndpointMap) {
		mu.Lock()
		calls++
		mu.Unlock()
		return flatRecords(), nil
	})

	var wg sync.WaitGroup
	trees := make([]*EntityProperty, 32)
	for i := range trees {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trees[i] = d.Tree()
		}(i)
	}
	wg.Wait()

	for _, tr := range trees {
		require.Same(t, trees[0], tr)
	}
	require.Equal(t, 1, calls)
}
