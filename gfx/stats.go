package gfx

import "sync/atomic"

// Stats is a snapshot of the running counters of a Device.
type Stats struct {
	// Frames is the number of frames submitted.
	Frames uint64

	// DrawCalls is the number of non-empty draw calls recorded.
	DrawCalls uint64

	// Vertices is the total vertex count passed to draw calls.
	Vertices uint64

	// LastFrameVertices is the vertex count of the most recent frame.
	LastFrameVertices uint64

	// ShaderCompiles counts successful program builds.
	ShaderCompiles uint64

	// ShaderErrors counts failed program builds.
	ShaderErrors uint64
}

type stats struct {
	frames            atomic.Uint64
	drawCalls         atomic.Uint64
	vertices          atomic.Uint64
	lastFrameVertices atomic.Uint64
	shaderCompiles    atomic.Uint64
	shaderErrors      atomic.Uint64
}

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	return Stats{
		Frames:            d.stats.frames.Load(),
		DrawCalls:         d.stats.drawCalls.Load(),
		Vertices:          d.stats.vertices.Load(),
		LastFrameVertices: d.stats.lastFrameVertices.Load(),
		ShaderCompiles:    d.stats.shaderCompiles.Load(),
		ShaderErrors:      d.stats.shaderErrors.Load(),
	}
}

// ResetStats zeroes all counters.
func (d *Device) ResetStats() {
	d.stats.frames.Store(0)
	d.stats.drawCalls.Store(0)
	d.stats.vertices.Store(0)
	d.stats.lastFrameVertices.Store(0)
	d.stats.shaderCompiles.Store(0)
	d.stats.shaderErrors.Store(0)
}
