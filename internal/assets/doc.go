// Package assets provides the CSS styles used to render invoices.
//
// Styles are looked up by name through a StyleLoader:
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// Style names are validated so that a name can never address a file outside
// the styles directory.
package assets
