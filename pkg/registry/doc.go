// Package registry provides an ordered, generic registry.
//
// Items keep the order in which they were registered; that order is the
// execution order of install and uninstall steps. Registries are filled by
// explicit Register calls during startup, not by init() side effects.
package registry
