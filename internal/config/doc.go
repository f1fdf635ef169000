// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from the file given with --config, otherwise from
// config.cue in the user configuration directory ($XDG_CONFIG_HOME/axiconv on
// Linux), otherwise from config.cue in the working directory. Files are
// validated against the embedded #Config schema (config_schema.cue) before
// being merged over the defaults. AXICONV_* environment variables override
// both, e.g. AXICONV_VIVADO_BINARY.
package config
