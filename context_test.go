package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanContextReset(t *testing.T) {
	ctx := acquireScanContext()

	ctx.spans = append(ctx.spans, span{start: 1, end: 5})
	ctx.offsets = append(ctx.offsets, 3, 7)

	ctx.reset()

	assert.Empty(t, ctx.spans)
	assert.Empty(t, ctx.offsets)
	assert.NotZero(t, cap(ctx.offsets), "reset should keep the backing array")

	releaseScanContext(ctx)
}

func TestScanContextDropsOversizedBuffers(t *testing.T) {
	ctx := &scanContext{
		spans:   make([]span, 0, maxPooledCap+1),
		offsets: make([]int, 0, maxPooledCap+1),
	}

	ctx.reset()

	assert.LessOrEqual(t, cap(ctx.spans), maxPooledCap)
	assert.LessOrEqual(t, cap(ctx.offsets), maxPooledCap)
}

func TestScanContextPoolConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	content := "[[☃ categorizer 1]] categorizer [[☃ categorizer 2]] categorizer"

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []int{22, 56}, Locate(content, "categorizer"))
		}()
	}

	wg.Wait()
}
