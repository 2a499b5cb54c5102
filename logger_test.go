package svglite

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite/vglitetest"
)

func TestRenderLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	pkg := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(pkg)

	if got := renderLogger(defaultOptions()); got != pkg {
		t.Error("renderLogger() without WithLogger should return the package logger")
	}
	call := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	o := defaultOptions()
	WithLogger(call)(&o)
	if got := renderLogger(o); got != call {
		t.Error("renderLogger() should prefer the WithLogger logger")
	}
}

func TestWarningsCarryReason(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tree := scene.NewTree(scene.Rect{Width: 10, Height: 10})
	tree.Root.Add(&scene.Text{Transform: scene.Identity(), ID: "caption", Content: "hi", Fill: scene.SolidFill(scene.RGB(0, 0, 0))})
	hidden := scene.NewGroup()
	hidden.Hidden = true
	tree.Root.Add(hidden)

	if err := Render(vglitetest.NewRecorder(nil), newTarget(10, 10), tree, WithLogger(l)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "id=caption") {
		t.Errorf("log output = %q, want a warning for the caption", out)
	}
	if !strings.Contains(out, ErrMissingCapability.Error()) {
		t.Errorf("log output = %q, want the missing capability reason", out)
	}
	if strings.Contains(out, "hidden group") {
		t.Errorf("log output = %q, hidden groups are debug records", out)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)

	if Logger() != custom {
		t.Fatal("Logger() did not return the custom logger set via SetLogger")
	}

	// A path with no area is skipped with a warning.
	tree := scene.NewTree(scene.Rect{Width: 10, Height: 10})
	p := scene.NewPath().MoveTo(1, 1).LineTo(1, 1)
	p.ID = "dot"
	p.Fill = scene.SolidFill(scene.RGB(1, 2, 3))
	tree.Root.Add(p)

	if err := Render(vglitetest.NewRecorder(nil), newTarget(10, 10), tree); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "skipping path") || !strings.Contains(out, "id=dot") {
		t.Errorf("log output = %q, want a skipped path record", out)
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	var pkg, call bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&pkg, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l := slog.New(slog.NewTextHandler(&call, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree := scene.NewTree(scene.Rect{Width: 10, Height: 10})
	tree.Root.Add(&scene.Text{Transform: scene.Identity(), ID: "label", Content: "hi", Fill: scene.SolidFill(scene.RGB(0, 0, 0))})

	if err := Render(vglitetest.NewRecorder(nil), newTarget(10, 10), tree, WithLogger(l)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if pkg.Len() != 0 {
		t.Errorf("package logger received %q, want nothing", pkg.String())
	}
	if !strings.Contains(call.String(), "skipping text") {
		t.Errorf("call logger = %q, want a skipped text record", call.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should restore the silent logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
