// Package config holds the settings of the fundamentals command. Settings
// come from defaults, then an optional TOML or YAML file, then flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fundamentals/gfx"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// ErrFormat is returned by Load for a file extension it cannot parse.
var ErrFormat = errors.New("config: unsupported file format")

// Config is the full set of settings.
type Config struct {
	// Demo is the registry name of the demo to run.
	Demo string `toml:"demo" yaml:"demo"`

	// Backend is a gfx backend name. Empty selects the default backend.
	Backend string `toml:"backend" yaml:"backend"`

	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// FPS caps the frame rate; 0 renders as fast as possible.
	FPS int `toml:"fps" yaml:"fps"`

	// Frames is the number of frames a headless run renders.
	Frames int `toml:"frames" yaml:"frames"`

	// Output is the PNG written after a headless run. Empty skips it.
	Output string `toml:"output" yaml:"output"`

	// Window opens a window instead of rendering headless.
	Window bool `toml:"window" yaml:"window"`

	// Texture is the image the cube demo loads.
	Texture string `toml:"texture" yaml:"texture"`

	// ShaderDir overrides embedded shaders with <ShaderDir>/<demo>.wgsl.
	ShaderDir string `toml:"shader_dir" yaml:"shader_dir"`

	// Watch reloads the demo when a file in ShaderDir changes.
	Watch bool `toml:"watch" yaml:"watch"`

	// Seed seeds the random source; 0 picks one at startup.
	Seed uint64 `toml:"seed" yaml:"seed"`

	Verbose bool `toml:"verbose" yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Demo:    "triangle",
		Backend: gfx.BackendVulkan,
		Width:   800,
		Height:  600,
		FPS:     60,
		Frames:  120,
		Output:  "frame.png",
	}
}

// Load reads path over c. The format is picked from the extension: .toml,
// or .yaml and .yml. Unknown keys are rejected.
func (c *Config) Load(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains([]string{".toml", ".yaml", ".yml"}, ext) {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	}
	// An empty backend means the default one, as in gfx.Open.
	if strings.TrimSpace(c.Backend) == "" {
		c.Backend = gfx.BackendVulkan
	}
	return nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if c.FPS < 0 {
		errs = append(errs, fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames))
	}
	if b := strings.ToLower(strings.TrimSpace(c.Backend)); b != "" && !slices.Contains(gfx.Backends(), b) {
		errs = append(errs, fmt.Errorf("%w: backend %q (want one of %s)",
			ErrInvalid, c.Backend, strings.Join(gfx.Backends(), ", ")))
	}
	if c.Demo == "" {
		errs = append(errs, fmt.Errorf("%w: no demo", ErrInvalid))
	}
	if c.Watch && c.ShaderDir == "" {
		errs = append(errs, fmt.Errorf("%w: watch needs a shader directory", ErrInvalid))
	}
	return errors.Join(errs...)
}
