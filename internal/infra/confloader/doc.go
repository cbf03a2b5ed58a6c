// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader that supports multiple
// sources using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: YAML files, environment variables, flag maps
//   - Watch Support: callbacks when the config file is rewritten
//   - Type Safety: Unmarshaling into typed structs
//   - Defaults: fields already set on the target survive missing keys
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (FEATHERSERVE_ prefix)
//  3. Configuration file
//  4. Default values
package confloader
