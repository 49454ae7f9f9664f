package config

import (
	_ "embed"
)

//go:embed example.yaml
var exampleYaml string

// Example returns an options file with every key set to its default.
func Example() string {
	return exampleYaml
}
