package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Pipeline errors (A000-A099)

	"A000": {
		Category: CategoryRender,
		Message:  "Asset pipeline failed",
	},
	"A001": {
		Category:   CategoryResolve,
		Message:    "Invalid component identity",
		Detail:     "A relative asset reference needs a component that names its module. Components are identified by assets.Module, an AssetModule method, their Go package, or the package of a function.",
		Suggestion: "Pass assets.Module(\"your/module\") as the component, or use a package path such as \"your/module:static/site.css\".",
	},
	"A002": {
		Category:   CategoryResolve,
		Message:    "Package not found",
		Detail:     "No loader knows the module or package named by the reference.",
		Suggestion: "Register the module with the loader, or add it to the roots section of the configuration.",
	},
	"A003": {
		Category:   CategoryValidate,
		Message:    "Asset not found",
		Detail:     "The reference resolved to a logical path, but no file exists there.",
		Suggestion: "Check the file exists below the module's resource root.",
	},
	"A004": {
		Category:   CategoryRender,
		Message:    "Unsupported attribute value",
		Detail:     "The path strategy could not turn a resource into a path for the output document.",
		Suggestion: "Logical paths must be relative and clean. Check the strategy supports the handle.",
	},
	"A005": {
		Category:   CategoryRender,
		Message:    "Unrendered asset reference",
		Detail:     "A tree reached HTML serialization while still holding resource values.",
		Suggestion: "Run assets.Renderer.Render (or Pipeline.Process) before serializing.",
	},

	// Publish errors (P001-P099)

	"P001": {
		Category:   CategoryPublish,
		Message:    "Publishing assets failed",
		Suggestion: "Check the output directory or bucket is writable.",
	},

	// Configuration errors (C001-C099)

	"C001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create assetref.json or assetref.yaml, or pass --config.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Configuration file is malformed",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// CLI errors (X001-X099)

	"X001": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
