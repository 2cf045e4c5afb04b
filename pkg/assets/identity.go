package assets

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Module is a component identity given directly as a module name.
//
//	p.Process(ctx, tree, assets.Module("example.com/site/widgets"), "index.html")
type Module string

// ModuleIdentifier is implemented by components that name their module
// explicitly instead of relying on their Go package path.
type ModuleIdentifier interface {
	AssetModule() string
}

var errNoModule = errors.New("component does not identify a module")

// ModuleOf returns the module a component belongs to. In order:
//
//   - a Module value is its own module
//   - a ModuleIdentifier reports its module
//   - a named type (or pointer to one) belongs to its Go package
//   - a function belongs to the Go package that declares it
//
// Anything else, including nil and unnamed types, is an error.
func ModuleOf(component any) (string, error) {
	switch c := component.(type) {
	case nil:
		return "", errNoModule
	case Module:
		if c == "" {
			return "", errNoModule
		}
		return string(c), nil
	case ModuleIdentifier:
		if m := c.AssetModule(); m != "" {
			return m, nil
		}
		return "", errNoModule
	}

	v := reflect.ValueOf(component)
	t := v.Type()
	if t.Kind() == reflect.Func {
		if v.IsNil() {
			return "", errNoModule
		}
		fn := runtime.FuncForPC(v.Pointer())
		if fn == nil {
			return "", errNoModule
		}
		if pkg := funcPackage(fn.Name()); pkg != "" {
			return pkg, nil
		}
		return "", errNoModule
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg, nil
	}
	return "", errNoModule
}

// funcPackage extracts the package path from a runtime function name such
// as "example.com/site/widgets.(*Header).Render". The runtime escapes dots
// in the last path element as %2e, so "gopkg.in/yaml%2ev3.F" yields
// "gopkg.in/yaml.v3" to match reflect's PkgPath.
func funcPackage(name string) string {
	slash := strings.LastIndexByte(name, '/')
	dot := strings.IndexByte(name[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	return strings.ReplaceAll(name[:slash+1+dot], "%2e", ".")
}

// describeComponent returns a printable identity for error messages.
func describeComponent(component any) string {
	if m, err := ModuleOf(component); err == nil {
		return m
	}
	if component == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", component)
}
