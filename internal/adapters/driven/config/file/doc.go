// Package file stores pdfseek configuration as TOML under the config
// directory (~/.pdfseek/config.toml by default).
package file
