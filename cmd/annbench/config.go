package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gasparian/lsh-index-go/lsh"
)

// Config holds all needed variables to run the benchmark
type Config struct {
	Index       lsh.Config
	MaxNN       int
	Seed        uint64
	DatasetPath string
	Limit       int
	MetricsAddr string
}

var defaultEnv = map[string]string{
	"N_PLANES": "16",
	"N_TABLES": "10",
	"MAX_NN":   "100",
	"SEED":     "0",
}

func getEnv(key string) string {
	val := os.Getenv(key)
	if len(val) == 0 {
		return defaultEnv[key]
	}
	return val
}

// ParseEnv forms the benchmark config by parsing the environment variables;
// vectors dimensionality is taken from the dataset later
func ParseEnv() (*Config, error) {
	intVars := map[string]int{
		"N_PLANES": 0,
		"N_TABLES": 0,
		"MAX_NN":   0,
	}
	for key := range intVars {
		val, err := strconv.Atoi(getEnv(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		intVars[key] = val
	}
	seed, err := strconv.ParseUint(getEnv("SEED"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing SEED: %w", err)
	}
	return &Config{
		Index: lsh.Config{
			NPlanes: intVars["N_PLANES"],
			NTables: intVars["N_TABLES"],
		},
		MaxNN: intVars["MAX_NN"],
		Seed:  seed,
	}, nil
}
