// Package config loads client configuration from YAML and the
// environment.
//
// Precedence, lowest first: built-in defaults, the optional YAML file,
// environment variables. A .env file in the working directory is
// merged into the environment before the variables are read, which
// keeps local development setups out of shell profiles.
package config
