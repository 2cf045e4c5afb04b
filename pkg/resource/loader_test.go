package resource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestRegistryRoot(t *testing.T) {
	reg := NewRegistry()
	reg.Register("pkga", testRoot())

	root, err := reg.Root("pkga")
	if err != nil {
		t.Fatalf("Root(pkga) error = %v", err)
	}
	if _, err := fs.Stat(root, "static/x.css"); err != nil {
		t.Errorf("Stat() error = %v", err)
	}

	_, err = reg.Root("missing")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("Root(missing) error = %v, want ErrModuleNotFound", err)
	}
}

func TestRegistryRegisterSub(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterSub("pkgb", testRoot(), "static"); err != nil {
		t.Fatalf("RegisterSub() error = %v", err)
	}

	root, err := reg.Root("pkgb")
	if err != nil {
		t.Fatalf("Root(pkgb) error = %v", err)
	}
	if _, err := fs.Stat(root, "x.css"); err != nil {
		t.Errorf("sub root should contain x.css: %v", err)
	}
}

func TestRegistryModules(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b", fstest.MapFS{})
	reg.Register("a", fstest.MapFS{})

	got := reg.Modules()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Modules() = %v, want [a b]", got)
	}
}

func TestDirLoader(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "pkga", "sub", "static")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.css"), []byte("a{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewDirLoader(base)

	root, err := loader.Root("pkga/sub")
	if err != nil {
		t.Fatalf("Root(pkga/sub) error = %v", err)
	}
	data, err := fs.ReadFile(root, "static/x.css")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a{}" {
		t.Errorf("ReadFile() = %q, want a{}", data)
	}

	for _, name := range []string{"missing", "file", "", ".", "../escape"} {
		if _, err := loader.Root(name); !errors.Is(err, ErrModuleNotFound) {
			t.Errorf("Root(%q) error = %v, want ErrModuleNotFound", name, err)
		}
	}
}

func TestChain(t *testing.T) {
	first := NewRegistry()
	first.Register("a", fstest.MapFS{"one.css": {}})
	second := NewRegistry()
	second.Register("a", fstest.MapFS{"two.css": {}})
	second.Register("b", fstest.MapFS{"three.css": {}})

	chain := Chain{first, second}

	root, err := chain.Root("a")
	if err != nil {
		t.Fatalf("Root(a) error = %v", err)
	}
	if _, err := fs.Stat(root, "one.css"); err != nil {
		t.Error("first loader should win")
	}

	if _, err := chain.Root("b"); err != nil {
		t.Errorf("Root(b) error = %v", err)
	}
	if _, err := chain.Root("c"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("Root(c) error = %v, want ErrModuleNotFound", err)
	}
}

func TestChainStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	chain := Chain{
		LoaderFunc(func(string) (fs.FS, error) { return nil, boom }),
		NewRegistry(),
	}
	if _, err := chain.Root("a"); !errors.Is(err, boom) {
		t.Errorf("Root() error = %v, want boom", err)
	}
}
