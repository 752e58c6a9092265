package gfx

import "errors"

// Errors returned by the graphics context.
var (
	// ErrUnknownBackend is returned by Open for a backend name that is not
	// supported or not compiled in.
	ErrUnknownBackend = errors.New("gfx: unknown backend")

	// ErrNoAdapter is returned by Open when the backend exposes no adapter.
	ErrNoAdapter = errors.New("gfx: no GPU adapter found")

	// ErrNotHALProvider is returned by Wrap when the provider does not expose
	// a hal.Device and hal.Queue.
	ErrNotHALProvider = errors.New("gfx: provider does not expose a HAL device")

	// ErrDeviceClosed is returned when a closed Device is used.
	ErrDeviceClosed = errors.New("gfx: device is closed")

	// ErrShaderCompile is returned when shader source fails to compile or
	// the pipeline cannot be linked.
	ErrShaderCompile = errors.New("gfx: shader compile failed")

	// ErrVertexData is returned for vertex data whose length is not a
	// multiple of the component count, or an unsupported component count.
	ErrVertexData = errors.New("gfx: invalid vertex data")

	// ErrVertexRange is returned when a draw reads past the end of a bound
	// vertex buffer.
	ErrVertexRange = errors.New("gfx: draw range exceeds vertex buffer")

	// ErrBinding is returned when a draw call does not supply the buffers,
	// uniforms or texture its program expects.
	ErrBinding = errors.New("gfx: draw bindings do not match program")

	// ErrUnknownUniform is returned by Uniforms.Set for a name missing from
	// the layout.
	ErrUnknownUniform = errors.New("gfx: unknown uniform")

	// ErrUniformType is returned by Uniforms.Set when the value type does not
	// match the declared field type.
	ErrUniformType = errors.New("gfx: uniform type mismatch")

	// ErrUniformSlot is returned for a slot index outside the block.
	ErrUniformSlot = errors.New("gfx: uniform slot out of range")

	// ErrInvalidSize is returned for a zero or negative target or texture
	// size.
	ErrInvalidSize = errors.New("gfx: invalid size")

	// ErrFrameEnded is returned when a Frame is used after End.
	ErrFrameEnded = errors.New("gfx: frame already ended")

	// ErrTimeout is returned when the GPU does not finish a submission in
	// time.
	ErrTimeout = errors.New("gfx: timed out waiting for GPU")
)
