// Package assets provides the page templates, navigation script and default
// stylesheet used to assemble a presentation.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates compiled into the binary
//	    ├── FilesystemLoader  - overrides read from a template directory
//	    └── Resolver          - custom-first lookup with embedded fallback
//
// Resolver lets a deck override a single file (say, navigation.js) while
// keeping every other built-in.
//
// # Directory Structure
//
//	{templateDir}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    ├── single.html          # single-file page
//	    ├── bundle_index.html    # bundle index.html
//	    ├── presentation.js      # bundle slide data + navigation
//	    └── navigation.js        # slide navigation
//
// # Security
//
// Names are validated and joined with filepath-securejoin, so a name can
// never resolve outside the template directory.
package assets
