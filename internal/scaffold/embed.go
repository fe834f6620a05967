package scaffold

import (
	_ "embed"
)

// classModuleTemplate is the built-in template for registry-backed class
// modules. The registry-backed flow always renders from this embedded copy;
// on-disk template precedence applies to the ad hoc class flow only.
//
//go:embed templates/class_module.go.tmpl
var classModuleTemplate string
