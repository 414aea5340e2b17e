package notation

import (
	"mercator-hq/lexicon/pkg/notation/collection"
	"mercator-hq/lexicon/pkg/notation/source"
)

// ParseString builds a collection from notation text without validation.
func ParseString(text string, opts ...collection.Option) (*collection.Collection, error) {
	return collection.FromText(text, opts...)
}

// LoadFile builds a collection from the notation file at path without validation.
func LoadFile(path string, opts ...collection.Option) (*collection.Collection, error) {
	src, err := source.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return collection.FromSource(src, opts...)
}

// LoadAndValidate loads a notation file and fails on its first structural problem.
func LoadAndValidate(path string, opts ...collection.Option) (*collection.Collection, error) {
	c, err := LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SaveFile writes the collection's canonical form to path atomically.
func SaveFile(path string, c *collection.Collection) error {
	return source.WriteFile(path, c.Lines())
}
