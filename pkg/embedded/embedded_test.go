package embedded

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/nightsky/pkg/config"
)

// withFS 在测试期间替换嵌入文件系统
func withFS(t *testing.T, fsys fstest.MapFS) {
	t.Helper()
	prev := dataFS
	if fsys == nil {
		dataFS = nil
	} else {
		Init(fsys)
	}
	t.Cleanup(func() { dataFS = prev })
}

func TestNotInitialized(t *testing.T) {
	withFS(t, nil)

	if IsInitialized() {
		t.Fatal("IsInitialized() = true before Init")
	}
	if _, err := ReadFile(VariantsPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile err = %v, want ErrNotInitialized", err)
	}
	if Exists(VariantsPath) {
		t.Error("Exists() = true before Init")
	}
}

func TestPaths(t *testing.T) {
	withFS(t, fstest.MapFS{
		"data/variants.yaml": {Data: []byte("variants: []\n")},
		"data/extra.yaml":    {Data: []byte("x: 1\n")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/variants.yaml", false},
		{"dot prefix", "./data/variants.yaml", false},
		{"backslashes", `data\variants.yaml`, os.PathSeparator != '\\'},
		{"bad prefix", "assets/variants.yaml", true},
		{"missing", "data/none.yaml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	if !Exists("data/extra.yaml") || !Exists("./data/extra.yaml") {
		t.Error("Exists() = false for an embedded file")
	}
	if Exists("data/nope") || Exists("extra.yaml") {
		t.Error("Exists() = true for a missing path")
	}
}

func TestLoadVariants_Embedded(t *testing.T) {
	raw, err := os.ReadFile("../../data/variants.yaml")
	if err != nil {
		t.Fatalf("read data/variants.yaml: %v", err)
	}
	withFS(t, fstest.MapFS{VariantsPath: {Data: raw}})

	f, err := LoadVariants("")
	if err != nil {
		t.Fatalf("LoadVariants: %v", err)
	}
	if _, err := f.Find(config.VariantDeepSpace); err != nil {
		t.Errorf("Find(deepspace): %v", err)
	}
}

func TestLoadVariants_Override(t *testing.T) {
	withFS(t, nil)

	if _, err := LoadVariants("../../data/variants.yaml"); err != nil {
		t.Errorf("override path should not need the embedded FS: %v", err)
	}
	if _, err := LoadVariants(""); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
}

func TestLoadVariants_Missing(t *testing.T) {
	withFS(t, fstest.MapFS{"data/other.yaml": {Data: []byte("x: 1\n")}})

	if _, err := LoadVariants(""); !errors.Is(err, ErrVariantsMissing) {
		t.Errorf("err = %v, want ErrVariantsMissing", err)
	}
}

func TestLoadVariants_Invalid(t *testing.T) {
	withFS(t, fstest.MapFS{VariantsPath: {Data: []byte("variants: [")}})

	if _, err := LoadVariants(""); err == nil {
		t.Error("expected parse error")
	}
}
