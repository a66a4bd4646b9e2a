package main

import (
	"fmt"

	"tomgalvin.uk/imgarray/internal/preset"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func NewRepository(path string) (*preset.Repository, error) {
	r, err := preset.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open preset database %s:\n%w", path, err)
	}
	return r, nil
}
