package main

import (
	"testing"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("N_PLANES", "24")
	t.Setenv("N_TABLES", "")
	t.Setenv("MAX_NN", "10")
	t.Setenv("SEED", "42")

	config, err := ParseEnv()
	if err != nil {
		t.Fatal(err)
	}
	if config.Index.NPlanes != 24 || config.Index.NTables != 10 || config.MaxNN != 10 || config.Seed != 42 {
		t.Errorf("Unexpected config: %+v", config)
	}
}

func TestParseEnvInvalid(t *testing.T) {
	t.Setenv("N_PLANES", "many")
	if _, err := ParseEnv(); err == nil {
		t.Fatal("Non-integer env value must be rejected")
	}
	t.Setenv("N_PLANES", "8")
	t.Setenv("SEED", "-1")
	if _, err := ParseEnv(); err == nil {
		t.Fatal("Negative seed must be rejected")
	}
}
