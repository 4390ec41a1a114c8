package config

import (
	"fmt"
	"os"
	"runtime"
)

// LoadConfig assembles the effective configuration. Sources are layered,
// lowest priority first: built-in defaults, then a YAML config file, then
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	// A -config flag names the file explicitly; otherwise search the
	// standard locations. Flag parsing proper happens later, so the path
	// is pulled straight from os.Args here.
	configPath := configPathFromArgs(os.Args)
	if configPath == "" {
		configPath = FindConfigFile()
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	// Flags win over everything loaded so far.
	if err := cfg.MergeFromFlags(); err != nil {
		return nil, err
	}

	// Workers left at 0 means "one per CPU".
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configPathFromArgs extracts the value of a -config flag from a raw
// argument list, or returns an empty string if the flag is absent.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "-config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
