package demo

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/gfx"
)

// ShaderLoader looks up replacement shader sources by demo name. ok is
// false when the loader has no source for the name.
type ShaderLoader interface {
	LoadShader(name string) (src string, ok bool, err error)
}

// DirShaders loads <dir>/<name>.wgsl.
type DirShaders string

// LoadShader implements ShaderLoader. A missing file is not an error.
func (d DirShaders) LoadShader(name string) (string, bool, error) {
	b, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("demo: read shader: %w", err)
	}
	return string(b), true, nil
}

// Path returns the file the source of name is loaded from.
func (d DirShaders) Path(name string) string {
	return filepath.Join(string(d), name+".wgsl")
}

// Env is what a demo gets to work with during Init and afterwards.
type Env struct {
	// Name is the registry name of the demo.
	Name string

	Device *gfx.Device
	Target *gfx.Target

	// Rand is the random source for colors and positions.
	Rand *rand.Rand

	// Log is tagged with the demo name.
	Log *slog.Logger

	// TexturePath is the image the textured demos load, if any.
	TexturePath string

	shaders ShaderLoader
}

// Size returns the current target size in pixels.
func (e *Env) Size() (width, height int) { return e.Target.Size() }

// Bounds returns the target size as float32, as the bounce state uses it.
func (e *Env) Bounds() [2]float32 {
	w, h := e.Size()
	return [2]float32{float32(w), float32(h)}
}

// Shader returns the shader source for the demo: the loader's override when
// there is one, otherwise embedded.
func (e *Env) Shader(embedded string) (string, error) {
	if e.shaders == nil {
		return embedded, nil
	}
	src, ok, err := e.shaders.LoadShader(e.Name)
	if err != nil {
		return "", err
	}
	if !ok {
		return embedded, nil
	}
	e.Log.Debug("demo: shader override", "name", e.Name)
	return src, nil
}

func newEnv(name string, dev *gfx.Device, target *gfx.Target, opts Options) *Env {
	seed := opts.Seed
	return &Env{
		Name:        name,
		Device:      dev,
		Target:      target,
		Rand:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Log:         fundamentals.Logger().With("demo", name),
		TexturePath: opts.TexturePath,
		shaders:     opts.Shaders,
	}
}
