// Package config provides configuration management for Dealhub.
//
// Configuration is loaded from a YAML file and overridden by
// environment variables (DEALHUB_* takes precedence over file values,
// which take precedence over defaults). Each attribute tracks where
// its value came from so "dealhubctl configuration show" can report
// default/file/environment per setting.
package config
