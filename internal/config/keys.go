package config

import (
	"fmt"
	"strconv"
	"strings"

	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-ttl").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Default is shown when the key is unset.
	Default string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects malformed values before they are saved.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "default-ttl",
		Default:     cache.DefaultTTL.String(),
		Description: "Cache entry lifetime when none is given (e.g. 5m)",
		Get:         func(cfg *Config) string { return cfg.DefaultTTL },
		Set:         func(cfg *Config, v string) { cfg.DefaultTTL = v },
		Validate:    func(v string) error { _, err := ParseDuration(v); return err },
	},
	{
		Name:        "max-size",
		Default:     strconv.Itoa(cache.DefaultMaxSize),
		Description: "Maximum number of cached entries",
		Get:         func(cfg *Config) string { return cfg.MaxSize },
		Set:         func(cfg *Config, v string) { cfg.MaxSize = v },
		Validate:    func(v string) error { _, err := ParseSize(v); return err },
	},
	{
		Name:        "cleanup-interval",
		Default:     cache.DefaultCleanupInterval.String(),
		Description: "Period of the background expiry sweep (e.g. 1m)",
		Get:         func(cfg *Config) string { return cfg.CleanupInterval },
		Set:         func(cfg *Config, v string) { cfg.CleanupInterval = v },
		Validate:    func(v string) error { _, err := ParseDuration(v); return err },
	},
	{
		Name:        "log-level",
		Default:     "info",
		Description: "Log level: debug, info, warn, or error",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = util.NormalizeKey(v) },
		Validate:    func(v string) error { _, err := ParseLevel(v); return err },
	},
	{
		Name:        "responder-url",
		Description: "HTTP endpoint answering chat messages (empty uses the built-in FAQ)",
		Get:         func(cfg *Config) string { return cfg.ResponderURL },
		Set:         func(cfg *Config, v string) { cfg.ResponderURL = v },
		Validate:    util.ValidateHTTPURL,
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
