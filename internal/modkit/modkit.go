package modkit

import (
	"scanweb/internal/modkit/module"
)

// Module is the common surface for modules that mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options.
// scanner, web and meta each expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
