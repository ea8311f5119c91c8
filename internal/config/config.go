// Package config assembles runtime settings for the passlock CLI from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence.
package config

import "github.com/dmitrijs2005/passlock/internal/vaultfile"

// Config holds runtime settings for the passlock CLI.
//
// Fields:
//   - VaultPath: location of the encrypted vault file.
//   - Verbose: enables debug-level logging.
//
// Key-derivation and cipher parameters are deliberately absent: they are
// format constants, not configuration.
type Config struct {
	VaultPath string
	Verbose   bool
}

// LoadDefaults populates c with sensible defaults. The vault path follows
// the host platform's per-user configuration directory; resolution failures
// leave the path empty for the caller to reject.
func (c *Config) LoadDefaults() {
	if path, err := vaultfile.DefaultPath(); err == nil {
		c.VaultPath = path
	}
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
