// Package config loads the viur configuration.
//
// Values are layered, later layers winning:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. a TOML file: the explicit path, else $XDG_CONFIG_HOME/viur/config.toml,
//     else ./viur.toml
//  3. VIUR_<SECTION>_<KEY> environment variables
//  4. overrides given by the caller, usually command line flags
//
// The result is decoded into a Config with mapstructure.
package config
