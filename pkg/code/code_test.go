package code

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_DetachesFromRegisteredInstance(t *testing.T) {
	clone := Success.Clone().WithData("payload")

	require.True(t, clone.HaveData())
	assert.Equal(t, "payload", clone.Data())
	assert.Equal(t, Success.Code(), clone.Code())
	assert.Equal(t, Success.Status(), clone.Status())

	// The registered instance stays pristine.
	assert.False(t, Success.HaveData())
	assert.Nil(t, Success.Data())

	detailed := ErrorInvalidParams.Clone().WithDetails("title is required")
	require.True(t, detailed.HaveDetails())
	assert.False(t, ErrorInvalidParams.HaveDetails())
}

// Registered codes are shared across every in-flight request; attaching a
// payload to a clone from many goroutines must never leak into the shared
// instance or across clones.
func TestClone_ConcurrentResponsesDoNotShareData(t *testing.T) {
	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf("payload-%d", i)
			clone := Success.Clone().WithData(payload)
			assert.Equal(t, payload, clone.Data())
		}(i)
	}
	wg.Wait()

	assert.False(t, Success.HaveData())
	assert.Nil(t, Success.Data())
}
