package main

import (
	"fmt"

	"github.com/milk9111/barkour/levels"
	"github.com/milk9111/barkour/prefabs"
)

// loadSpec reads --config, or the embedded config when the flag is empty.
func loadSpec() (*prefabs.GameSpec, error) {
	if flagConfig == "" {
		return prefabs.LoadGameSpec()
	}
	return prefabs.LoadFile(flagConfig)
}

func loadSpecAndLevel(name string) (*prefabs.GameSpec, *levels.Level, error) {
	spec, err := loadSpec()
	if err != nil {
		return nil, nil, err
	}
	level, err := levels.Resolve(spec, name)
	if err != nil {
		return nil, nil, fmt.Errorf("level %q: %w (available: %v)", name, err, levels.Names(spec))
	}
	return spec, level, nil
}
