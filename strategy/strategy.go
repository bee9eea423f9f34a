// Package strategy defines the pluggable strategy contracts used across the
// apikit building blocks, the delimiter-based scope strategy, and a named
// registry for looking strategies up at runtime.
package strategy

// Strategy is the minimal contract every pluggable behavior satisfies.
type Strategy interface {
	Name() string
}
