package engine

import "sync"

// scanContext holds the scratch slices used while scanning one content
// string. Instances are pooled so repeated scans over a document do not
// reallocate.
type scanContext struct {
	spans   []span // widget token spans of the current content
	offsets []int  // eligible match offsets of the current content
}

// Slices that grew past this are dropped instead of pooled.
const maxPooledCap = 4096

var scanContextPool = sync.Pool{
	New: func() interface{} {
		return &scanContext{
			spans:   make([]span, 0, 16),
			offsets: make([]int, 0, 32),
		}
	},
}

func acquireScanContext() *scanContext {
	return scanContextPool.Get().(*scanContext)
}

func releaseScanContext(ctx *scanContext) {
	ctx.reset()
	scanContextPool.Put(ctx)
}

// reset truncates the scratch slices, keeping their backing arrays unless
// they became too large to be worth holding on to.
func (ctx *scanContext) reset() {
	if cap(ctx.spans) > maxPooledCap {
		ctx.spans = make([]span, 0, 16)
	}
	if cap(ctx.offsets) > maxPooledCap {
		ctx.offsets = make([]int, 0, 32)
	}
	ctx.spans = ctx.spans[:0]
	ctx.offsets = ctx.offsets[:0]
}
