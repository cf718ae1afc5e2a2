// Package config loads, normalizes, and validates glosscast configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the GLOSSCAST_LLM_API_KEY
// environment fallback for the LLM credential. Obtain settings through this
// package so downstream code receives sanitized paths and clear validation
// errors.
package config
