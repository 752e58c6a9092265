package demo

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

const fakeShader = `
@vertex
fn vs_main(@location(0) position: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.5, 1.0);
}
`

// fakeDemo draws one triangle per frame.
type fakeDemo struct {
	still    bool
	failInit error

	prog    *gfx.Program
	buf     *gfx.VertexBuffer
	renders int
	source  string
}

func (d *fakeDemo) Init(env *Env) error {
	if d.failInit != nil {
		return d.failInit
	}
	src, err := env.Shader(fakeShader)
	if err != nil {
		return err
	}
	d.source = src
	d.prog, err = env.Device.NewProgram(gfx.ProgramDesc{
		Label:      env.Name,
		Source:     src,
		Attributes: []gfx.Attribute{{Name: "position", Components: 2}},
	})
	if err != nil {
		return err
	}
	d.buf, err = env.Device.NewVertexBuffer(env.Name, 2, fundamentals.BasicTriangle())
	return err
}

func (d *fakeDemo) Render(f *gfx.Frame, _ loop.Tick) error {
	d.renders++
	return f.Draw(gfx.DrawCall{Program: d.prog, Buffers: []*gfx.VertexBuffer{d.buf}, Count: d.buf.Count()})
}

func (d *fakeDemo) Release() {
	if d.buf != nil {
		d.buf.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}

func (d *fakeDemo) Description() string { return "a fake demo" }

type stillDemo struct{ fakeDemo }

func (d *stillDemo) NeedsRedraw(resized bool) bool { return resized }

func openNoop(t *testing.T) *gfx.Device {
	t.Helper()
	dev, err := gfx.Open(gfx.OpenOptions{Backend: gfx.BackendNoop})
	if err != nil {
		t.Fatalf("gfx.Open: %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

// register adds a demo for the duration of the test.
func register(t *testing.T, name string, f Factory) {
	t.Helper()
	Register(name, f)
	t.Cleanup(func() { Unregister(name) })
}

func TestRegistry(t *testing.T) {
	register(t, "zz-test-b", func() Demo { return &fakeDemo{} })
	register(t, "zz-test-a", func() Demo { return &fakeDemo{} })

	if !IsRegistered("zz-test-a") {
		t.Error("IsRegistered(zz-test-a) = false")
	}
	names := Names()
	var got []string
	for _, n := range names {
		if n == "zz-test-a" || n == "zz-test-b" {
			got = append(got, n)
		}
	}
	if !reflect.DeepEqual(got, []string{"zz-test-a", "zz-test-b"}) {
		t.Errorf("Names() = %v, want sorted test demos", names)
	}

	if _, err := New("zz-missing"); !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("New(missing) error = %v, want ErrUnknownDemo", err)
	}
	if got := Description("zz-test-a"); got != "a fake demo" {
		t.Errorf("Description = %q", got)
	}
	if got := Description("zz-missing"); got != "" {
		t.Errorf("Description(missing) = %q", got)
	}

	Unregister("zz-test-a")
	if IsRegistered("zz-test-a") {
		t.Error("still registered after Unregister")
	}
}

func TestRunnerFrames(t *testing.T) {
	register(t, "zz-fake", func() Demo { return &fakeDemo{} })
	dev := openNoop(t)

	r, err := NewRunner(dev, "zz-fake", 32, 24, Options{})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		img, err := r.Frame(loop.Tick{Frame: uint64(i)}, 32, 24)
		if err != nil {
			t.Fatalf("Frame %d: %v", i, err)
		}
		if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
			t.Errorf("image bounds = %v", img.Bounds())
		}
	}
	if err := r.Step(loop.Tick{Frame: 3}, 50, 40); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if w, h := r.Env().Size(); w != 50 || h != 40 {
		t.Errorf("target not resized: %dx%d", w, h)
	}
	st := r.Stats()
	if st.Frames != 4 || st.DrawCalls != 4 || st.LastFrameVertices != fundamentals.TriangleVertices {
		t.Errorf("stats = %+v", st)
	}
	if r.Name() != "zz-fake" {
		t.Errorf("Name() = %q", r.Name())
	}
}

func TestRunnerRedrawer(t *testing.T) {
	var d *stillDemo
	register(t, "zz-still", func() Demo { d = &stillDemo{}; return d })
	dev := openNoop(t)

	r, err := NewRunner(dev, "zz-still", 16, 16, Options{})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	first, err := r.Frame(loop.Tick{}, 16, 16)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	again, err := r.Frame(loop.Tick{Frame: 1}, 16, 16)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if again != first {
		t.Error("unchanged still demo was rendered again")
	}
	if d.renders != 1 {
		t.Errorf("renders = %d, want 1", d.renders)
	}
	if _, err := r.Frame(loop.Tick{Frame: 2}, 20, 16); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if d.renders != 2 {
		t.Errorf("renders after resize = %d, want 2", d.renders)
	}
}

func TestRunnerInitFailure(t *testing.T) {
	boom := errors.New("boom")
	register(t, "zz-broken", func() Demo { return &fakeDemo{failInit: boom} })
	dev := openNoop(t)
	if _, err := NewRunner(dev, "zz-broken", 8, 8, Options{}); !errors.Is(err, boom) {
		t.Fatalf("NewRunner error = %v, want boom", err)
	}
	if _, err := NewRunner(dev, "zz-nope", 8, 8, Options{}); !errors.Is(err, ErrUnknownDemo) {
		t.Fatalf("NewRunner error = %v, want ErrUnknownDemo", err)
	}
}

func TestRunnerReload(t *testing.T) {
	register(t, "zz-reload", func() Demo { return &fakeDemo{} })
	dir := t.TempDir()
	dev := openNoop(t)

	r, err := NewRunner(dev, "zz-reload", 8, 8, Options{Shaders: DirShaders(dir)})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()
	before := r.demo

	// A broken override is logged and discarded.
	path := DirShaders(dir).Path("zz-reload")
	if err := os.WriteFile(path, []byte("@vertex fn ("), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := r.Reload(); !errors.Is(err, gfx.ErrShaderCompile) {
		t.Fatalf("Reload error = %v, want ErrShaderCompile", err)
	}
	if r.demo != before {
		t.Fatal("failed reload replaced the running demo")
	}
	if _, err := r.Frame(loop.Tick{}, 8, 8); err != nil {
		t.Fatalf("Frame after failed reload: %v", err)
	}

	fixed := fakeShader + "\n// edited\n"
	if err := os.WriteFile(path, []byte(fixed), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if r.demo == before {
		t.Fatal("Reload kept the old instance")
	}
	if got := r.demo.(*fakeDemo).source; got != fixed {
		t.Error("reloaded demo did not pick up the override")
	}
}

func TestDirShaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cube.wgsl"), []byte("src"), 0o600); err != nil {
		t.Fatal(err)
	}
	src, ok, err := DirShaders(dir).LoadShader("cube")
	if err != nil || !ok || src != "src" {
		t.Errorf("LoadShader(cube) = %q, %v, %v", src, ok, err)
	}
	if _, ok, err := DirShaders(dir).LoadShader("triangle"); ok || err != nil {
		t.Errorf("LoadShader(triangle) = %v, %v; want not found", ok, err)
	}
}
