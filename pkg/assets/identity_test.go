package assets

import (
	"errors"
	"testing"
)

const thisPackage = "github.com/vango-dev/assetref/pkg/assets"

type testComponent struct{}

func (testComponent) Render() {}

type namedComponent struct{ module string }

func (c namedComponent) AssetModule() string { return c.module }

func testRenderFunc() {}

func TestModuleOf(t *testing.T) {
	var nilFunc func()

	tests := []struct {
		name      string
		component any
		want      string
		wantErr   bool
	}{
		{"module", Module("site/widgets"), "site/widgets", false},
		{"identifier", namedComponent{"theme"}, "theme", false},
		{"struct", testComponent{}, thisPackage, false},
		{"pointer", &testComponent{}, thisPackage, false},
		{"func", testRenderFunc, thisPackage, false},
		{"method value", testComponent{}.Render, thisPackage, false},
		{"nil", nil, "", true},
		{"empty module", Module(""), "", true},
		{"empty identifier", namedComponent{}, "", true},
		{"nil func", nilFunc, "", true},
		{"builtin type", 42, "", true},
		{"anonymous struct", struct{ X int }{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModuleOf(tt.component)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ModuleOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ModuleOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFuncPackage(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"example.com/site/widgets.Header", "example.com/site/widgets"},
		{"example.com/site/widgets.(*Header).Render", "example.com/site/widgets"},
		{"example.com/site/widgets.Header.func1", "example.com/site/widgets"},
		{"main.main", "main"},
		{"gopkg.in/yaml%2ev3.Marshal", "gopkg.in/yaml.v3"},
		{"example.com/site/widgets%2ex.(*Header).Render", "example.com/site/widgets.x"},
		{"nodot", ""},
	}

	for _, tt := range tests {
		if got := funcPackage(tt.name); got != tt.want {
			t.Errorf("funcPackage(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInvalidComponentError(t *testing.T) {
	r := newTestResolver(t, testRegistry())

	_, err := r.Resolve(42, "static/site.css")
	if !errors.Is(err, ErrInvalidComponent) {
		t.Fatalf("Resolve() error = %v, want ErrInvalidComponent", err)
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Component != "int" {
		t.Errorf("Error.Component = %q, want %q", ae.Component, "int")
	}
}
