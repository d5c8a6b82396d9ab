package utils_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/internal/utils"
)

func TestOptionalRWMutexLocks(t *testing.T) {
	mutex := utils.NewOptionalRWMutex(false)
	require.True(t, mutex.UseMutex)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mutex.Lock()
			defer mutex.Unlock()
			counter++
		}()
	}
	wg.Wait()

	mutex.RLock()
	require.Equal(t, 50, counter)
	mutex.RUnlock()
}

func TestOptionalRWMutexExternallySynchronized(t *testing.T) {
	mutex := utils.NewOptionalRWMutex(true)
	require.False(t, mutex.UseMutex)

	// No-ops: locking twice in a row would deadlock a real mutex
	mutex.Lock()
	mutex.Lock()
	mutex.Unlock()
	mutex.Unlock()
}
