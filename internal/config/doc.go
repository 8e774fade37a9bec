// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and MATHQUIZ_-prefixed environment
// variables. Values are validated with struct tags before use.
package config
