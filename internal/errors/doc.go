// Package errors turns pipeline and configuration failures into coded,
// actionable messages for the command line.
//
// # Error Categories
//
//   - resolve: a reference could not be mapped to a resource
//   - validate: a resolved resource does not exist
//   - render: a resource could not be turned into a path or serialized
//   - publish: collected assets could not be written
//   - config: the configuration file is missing, malformed or invalid
//
// # Error Codes
//
// Each error has a unique code (e.g., "A003") with a short message, a
// detailed explanation and a hint. Errors returned by pkg/assets are
// mapped to codes by FromError:
//
//	err := errors.FromError(pipelineErr, "A000")
//	fmt.Fprint(os.Stderr, err.Format())
//	// Output:
//	// ERROR A003: Asset not found
//	//
//	//   asset:      static/site.css
//	//   attribute:  href
//	//   element:    <link>
//	//   component:  example.com/site/widgets
//	//   path:       example.com/site/widgets/static/site.css
//	//
//	//   Hint: Check the file exists below the module's resource root.
package errors
