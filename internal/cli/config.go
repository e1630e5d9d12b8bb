package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"studysheet/internal/store"

	"github.com/spf13/cobra"
)

// configKeys maps user-facing keys to setters on the global config. An empty value resets
// the key.
var configKeys = map[string]func(cfg *store.GlobalConfig, v string) error{
	"storage": func(cfg *store.GlobalConfig, v string) error {
		switch v {
		case "", store.BackendFile, store.BackendSQLite, store.BackendRedis, store.BackendMemory:
			cfg.Storage = v
			return nil
		}
		return fmt.Errorf("invalid storage: %s (expected file|sqlite|redis|memory)", v)
	},
	"redisUrl": func(cfg *store.GlobalConfig, v string) error {
		cfg.RedisURL = v
		return nil
	},
	"seed": func(cfg *store.GlobalConfig, v string) error {
		cfg.Seed = v
		return nil
	},
	"shareHistory": func(cfg *store.GlobalConfig, v string) error {
		if v == "" {
			cfg.ShareHistory = nil
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid shareHistory: %w", err)
		}
		cfg.ShareHistory = &b
		return nil
	},
	"persistDebounceMs": func(cfg *store.GlobalConfig, v string) error {
		if v == "" {
			cfg.PersistDebounceMs = 0
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid persistDebounceMs: %q", v)
		}
		cfg.PersistDebounceMs = n
		return nil
	},
	"log.mode": func(cfg *store.GlobalConfig, v string) error {
		logConfig(cfg).Mode = v
		return nil
	},
	"log.level": func(cfg *store.GlobalConfig, v string) error {
		logConfig(cfg).Level = v
		return nil
	},
	"log.file": func(cfg *store.GlobalConfig, v string) error {
		logConfig(cfg).File = v
		return nil
	},
}

func logConfig(cfg *store.GlobalConfig) *store.LogConfig {
	if cfg.Log == nil {
		cfg.Log = &store.LogConfig{}
	}
	return cfg.Log
}

func configKeyNames() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the global config (~/.studysheet/config.json)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   path,
				"config": app.config(),
				"keys":   configKeyNames(),
			}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigKey(cmd, app, args[0], strings.TrimSpace(args[1]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Reset a config key to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigKey(cmd, app, args[0], "")
		},
	})

	return cmd
}

func setConfigKey(cmd *cobra.Command, app *App, key, value string) error {
	set, ok := configKeys[key]
	if !ok {
		return writeErr(cmd, fmt.Errorf("unknown config key: %s (expected one of: %s)", key, strings.Join(configKeyNames(), ", ")))
	}
	cfg := app.config()
	if err := set(cfg, value); err != nil {
		return writeErr(cmd, err)
	}
	if err := store.SaveConfig(cfg); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": cfg})
}
