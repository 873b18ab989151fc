package main

import (
	"cmp"
	"fmt"
	"os"
	"strconv"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	SeedPath string
	JSON     bool
	Debug    bool
}

// resolve fills unset flags from LIBRARY_SEED and LIBRARY_DEBUG.
func (c Config) resolve() (Config, error) {
	c.SeedPath = cmp.Or(c.SeedPath, os.Getenv("LIBRARY_SEED"))
	if v := os.Getenv("LIBRARY_DEBUG"); !c.Debug && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("LIBRARY_DEBUG: invalid boolean %q", v)
		}
		c.Debug = debug
	}
	return c, nil
}
