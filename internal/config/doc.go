// Package config loads server settings from an optional YAML file.
//
// Files support ${VAR} environment interpolation. A handful of GRIDCLAIM_*
// variables override file values after defaults are applied.
package config
