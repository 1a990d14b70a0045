package catalog

import (
	_ "embed"
	"sync"
)

//go:embed data/holistic.yaml
var holisticYAML []byte

//go:embed data/dimensional.yaml
var dimensionalYAML []byte

var (
	defaultOnce     = sync.OnceValues(func() (*Catalog, error) { return Load(holisticYAML) })
	dimensionalOnce = sync.OnceValues(func() (*Catalog, error) { return Load(dimensionalYAML) })
)

// Default returns the built-in two-axis (Physical/Mental) questionnaire.
func Default() (*Catalog, error) {
	return defaultOnce()
}

// DefaultDimensional returns the built-in four-axis questionnaire used for profile matching.
func DefaultDimensional() (*Catalog, error) {
	return dimensionalOnce()
}

// MustDefault is Default for callers that treat a broken built-in catalog as a programming error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// MustDefaultDimensional is DefaultDimensional with a panic on error.
func MustDefaultDimensional() *Catalog {
	c, err := DefaultDimensional()
	if err != nil {
		panic(err)
	}
	return c
}
