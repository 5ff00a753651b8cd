// Package config loads semtparser settings.
//
// Layers, lowest priority first: the embedded defaults, the user config file
// (TOML or YAML), the SemT service variables (BASE_URL, API_URL, USERNAME,
// PASSWORD) and finally SEMT_* overrides such as SEMT_PIPELINE_WINDOW.
package config
