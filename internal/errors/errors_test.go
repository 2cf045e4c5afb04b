package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/render"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"resolve error", "A001", "Invalid component identity", CategoryResolve},
		{"validate error", "A003", "Asset not found", CategoryValidate},
		{"config error", "C002", "Configuration file is malformed", CategoryConfig},
		{"unknown error code", "Z999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown flag %q", "--x")
	if err.Message != `unknown flag "--x"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `unknown flag "--x"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCodedError_Error(t *testing.T) {
	err := New("A003")
	if got := err.Error(); got != "A003: Asset not found" {
		t.Errorf("Error() = %q", got)
	}

	cause := fmt.Errorf("disk gone")
	err = New("P001").Wrap(cause)
	if got := err.Error(); got != "P001: Publishing assets failed: disk gone" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestCodedError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "assetref.json")
	content := "{\n  \"sitePrefix\": \"assets\",\n  \"cacheSize\": \"big\"\n}\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("C002").WithLocation(tmpFile, 3, 16)
	if err.Location == nil || err.Location.Line != 3 || err.Location.Column != 16 {
		t.Fatalf("Location = %+v", err.Location)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
}

func TestWithField(t *testing.T) {
	err := New("A003").WithField("asset", "x.css").WithField("attribute", "")
	if len(err.Fields) != 1 || err.Fields[0] != (Field{"asset", "x.css"}) {
		t.Errorf("Fields = %v", err.Fields)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"invalid component", &assets.Error{Kind: assets.ErrInvalidComponent}, "A001"},
		{"package not found", &assets.Error{Kind: assets.ErrPackageNotFound}, "A002"},
		{"asset not found", &assets.Error{Kind: assets.ErrAssetNotFound}, "A003"},
		{"unsupported value", &assets.Error{Kind: assets.ErrUnsupportedValue}, "A004"},
		{"unrendered asset", fmt.Errorf("page: %w", render.ErrUnrenderedAsset), "A005"},
		{"other", fmt.Errorf("boom"), "P001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err, "P001")
			if got.Code != tt.code {
				t.Errorf("Code = %q, want %q", got.Code, tt.code)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("FromError should wrap the original error")
			}
		})
	}

	if FromError(nil, "A000") != nil {
		t.Error("FromError(nil) should return nil")
	}

	coded := New("C001")
	if FromError(fmt.Errorf("load: %w", coded), "A000") != coded {
		t.Error("FromError should return an existing CodedError")
	}
}

func TestFromErrorFields(t *testing.T) {
	err := FromError(&assets.Error{
		Kind:        assets.ErrAssetNotFound,
		Asset:       "static/site.css",
		Attr:        "href",
		Tag:         "link",
		Component:   "example.com/site",
		LogicalPath: "example.com/site/static/site.css",
	}, "A000")

	want := map[string]string{
		"asset":     "static/site.css",
		"attribute": "href",
		"element":   "<link>",
		"component": "example.com/site",
		"path":      "example.com/site/static/site.css",
	}
	got := make(map[string]string)
	for _, f := range err.Fields {
		got[f.Label] = f.Value
	}
	for label, value := range want {
		if got[label] != value {
			t.Errorf("field %s = %q, want %q", label, got[label], value)
		}
	}
	if _, ok := got["cause"]; ok {
		t.Error("cause field set without a cause")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{&Location{File: "a.json", Line: 3, Column: 5}, "a.json:3:5"},
		{&Location{File: "a.json", Line: 3}, "a.json:3"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "assetref.yaml")
	content := "roots:\n  site: ./site\ncacheSize: big\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("C002").
		WithLocation(tmpFile, 3, 12).
		WithField("key", "cacheSize").
		WithSuggestion("cacheSize must be a number")

	formatted := err.Format()
	for _, want := range []string{
		"ERROR C002: Configuration file is malformed",
		tmpFile + ":3:12",
		"→    3 │ cacheSize: big",
		"key: cacheSize",
		"Hint: cacheSize must be a number",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("C003").WithLocation("assetref.json", 10, 5)
	want := "assetref.json:10:5: C003: Invalid configuration"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	coded := New("C003").WithLocation("assetref.json", 10, 5).WithSuggestion("Fix the file")
	tests := []struct {
		name    string
		err     error
		verbose bool
		want    []string
		notWant []string
		oneLine bool
	}{
		{
			name:    "compact",
			err:     coded,
			want:    []string{"error: assetref.json:10:5: C003: Invalid configuration"},
			notWant: []string{"Hint:"},
			oneLine: true,
		},
		{
			name:    "verbose",
			err:     coded,
			verbose: true,
			want:    []string{"C003", "Invalid configuration", "Hint: Fix the file"},
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: []string{"ERROR:", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			PrintError(&buf, tt.err, tt.verbose)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("PrintError() missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("PrintError() should not contain %q:\n%s", w, out)
				}
			}
			if tt.oneLine && strings.Count(out, "\n") != 1 {
				t.Errorf("PrintError() = %q, want a single line", out)
			}
		})
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("GetAllCodes() not sorted: %v", codes)
		}
	}
	for _, code := range []string{"A001", "A002", "A003", "A004", "A005", "C001", "C002", "C003", "P001"} {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("code %s not registered", code)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("T001", ErrorTemplate{Category: CategoryCLI, Message: "Test"})
	defer delete(registry, "T001")

	if New("T001").Message != "Test" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
