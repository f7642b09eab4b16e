package modkit

import (
	"net/http"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies Option funcs and returns a plain struct.
// defaultName fills Name when no WithName was given
func Build(defaultName string, opts ...Option) Built {
	c := buildCfg{name: defaultName}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// PortsAs returns the injected ports as T
func PortsAs[T any](b Built) (T, bool) {
	v, ok := b.Ports.(T)
	return v, ok
}
