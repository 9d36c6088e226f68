package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-intersect/internal/index"
)

var configKeys = []string{keyWorkers, keyIndex, keyStrictTokens, keyLogLevel}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-intersect configuration",
		Long:  "Show, get, or set configuration values (workers, index, strict_tokens, log.level). Config is stored in ~/.vibe-intersect.yaml.",
		Example: `  vibe-intersect config                      # show all config
  vibe-intersect config set index biogo      # use the biogo interval tree
  vibe-intersect config get workers          # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	settings := make(map[string]any, len(configKeys))
	for _, k := range configKeys {
		settings[k] = viper.Get(k)
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// parseConfigValue converts value to the type stored for key.
func parseConfigValue(key, value string) (any, error) {
	switch key {
	case keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("workers must be a non-negative integer, got %q", value)
		}
		return n, nil
	case keyIndex:
		k, err := index.ParseKind(value)
		if err != nil {
			return nil, err
		}
		return string(k), nil
	case keyStrictTokens:
		switch value {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
		return nil, fmt.Errorf("strict_tokens must be true or false, got %q", value)
	case keyLogLevel:
		if _, err := zap.ParseAtomicLevel(value); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", value, err)
		}
		return value, nil
	}
	return nil, fmt.Errorf("unknown config key %q", key)
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if !slices.Contains(configKeys, key) {
		return usageError{fmt.Errorf("unknown config key %q", key)}
	}
	v, err := parseConfigValue(key, value)
	if err != nil {
		return usageError{err}
	}
	viper.Set(key, v)

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vibe-intersect.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	if !viper.IsSet(key) {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.Get(key))
	return nil
}
