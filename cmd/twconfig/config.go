package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twconfig"
)

var k = koanf.New(".")

// loadConfig loads settings with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags.
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twconfig.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags the user set; defaults live in the get*WithFallback calls so
	// they do not shadow the file and env layers.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads settings from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("TWCONFIG_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// settingsSections are the top-level sections of the settings file.
var settingsSections = map[string]bool{
	"init": true, "validate": true, "match": true, "convert": true, "watch": true, "log": true,
}

// envKey maps an environment variable to a settings key. The first segment
// names a section when it is one; the remaining underscores become hyphens:
//
//	TWCONFIG_VALIDATE_STRICT        -> validate.strict
//	TWCONFIG_MATCH_FAIL_UNMATCHED   -> match.fail-unmatched
//	TWCONFIG_FILE                   -> file
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, "TWCONFIG_"))
	if section, rest, ok := strings.Cut(key, "_"); ok && settingsSections[section] {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// resolveConfigPath picks the record to work on: the positional argument,
// then the `file` setting, then discovery in the working directory.
func resolveConfigPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if path := k.String("file"); path != "" {
		return path, nil
	}
	return twconfig.Discover(".")
}

// matchSettings holds the resolved options of the match command.
type matchSettings struct {
	Base          string
	GitIgnore     bool
	FailUnmatched bool
	OutputFormat  string
}

func buildMatchSettings(configPath string) matchSettings {
	return matchSettings{
		Base:          getStringWithFallback("base", "match.base", filepath.Dir(configPath)),
		GitIgnore:     getBoolWithFallback("gitignore", "match.gitignore", false),
		FailUnmatched: getBoolWithFallback("fail-unmatched", "match.fail-unmatched", false),
		OutputFormat:  getStringWithFallback("output-format", "match.output-format", ""),
	}
}

// validateSettings holds the resolved options of the validate command.
type validateSettings struct {
	Strict       bool
	OutputFormat string
}

func buildValidateSettings() validateSettings {
	return validateSettings{
		Strict:       getBoolWithFallback("strict", "validate.strict", false),
		OutputFormat: getStringWithFallback("output-format", "validate.output-format", ""),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
