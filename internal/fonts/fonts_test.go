package fonts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveEveryBucket(t *testing.T) {
	m := Map{
		"900": "fonts/Black.ttf",
		"800": "fonts/ExtraBold.ttf",
		"700": "fonts/Bold.ttf",
		"600": "fonts/SemiBold.ttf",
		"500": "fonts/Medium.ttf",
		"400": "fonts/Regular.ttf",
		"300": "fonts/Light.ttf",
		"200": "fonts/ExtraLight.ttf",
		"100": "fonts/Thin.ttf",
	}
	for _, w := range Weights {
		if got := m.Resolve(w); got != m[w] {
			t.Errorf("Resolve(%s) = %s, want %s", w, got, m[w])
		}
	}
}

func TestResolveFallsBackToRegular(t *testing.T) {
	m := DefaultMap()
	for _, w := range []string{"150", "650", "", "heavy", "1000"} {
		if got := m.Resolve(w); got != GoRegular {
			t.Errorf("Resolve(%q) = %s, want %s", w, got, GoRegular)
		}
	}
}

func TestNormalizeWeight(t *testing.T) {
	tests := map[string]string{
		"bold":   "700",
		"Normal": "400",
		" 600 ":  "600",
		"700.0":  "700",
		"650.5":  "650.5",
	}
	for in, want := range tests {
		if got := NormalizeWeight(in); got != want {
			t.Errorf("NormalizeWeight(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultMap().Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (Map{"700": GoBold}).Validate(); err == nil {
		t.Error("map without default entry validated")
	}
}

func TestResourcesAreDistinct(t *testing.T) {
	got := DefaultMap().Resources()
	want := []string{GoRegular, GoMedium, GoBold}
	if len(got) != len(want) {
		t.Fatalf("resources = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("resources[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLibraryReadyAndFallback(t *testing.T) {
	m := DefaultMap()
	m["900"] = "does/not/exist.ttf"
	lib := NewLibrary(m)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := lib.Ready(ctx); err != nil {
		t.Fatal(err)
	}

	missing := lib.Get("does/not/exist.ttf")
	if missing == nil || missing.Font == nil {
		t.Fatal("missing font did not fall back")
	}

	face := lib.Face(GoBold, 20)
	if face == nil {
		t.Fatal("no face")
	}
	if face != lib.Face(GoBold, 20) {
		t.Error("face not cached")
	}
	if h := face.Metrics().Height.Ceil(); h < 20 {
		t.Errorf("line height %d too small for 20px face", h)
	}
}

func TestReadyHonoursContext(t *testing.T) {
	lib := NewLibrary(DefaultMap())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either outcome is fine as long as Ready returns promptly.
	done := make(chan struct{})
	go func() {
		_ = lib.Ready(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Ready blocked on a cancelled context")
	}
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fonts.json")
	if err := os.WriteFile(path, []byte(`{"bold": "fonts/Bold.ttf", "300.0": "fonts/Light.ttf"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if m["700"] != "fonts/Bold.ttf" || m["300"] != "fonts/Light.ttf" {
		t.Errorf("overrides not applied: %v", m)
	}
	if m[DefaultWeight] != GoRegular {
		t.Errorf("default = %q", m[DefaultWeight])
	}

	if _, err := LoadMap(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
