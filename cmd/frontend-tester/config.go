package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/frontend-tester/internal/config"
	"github.com/v0xg/frontend-tester/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var (
		key          string
		value        string
		globalConfig bool
	)

	cmd := &cobra.Command{
		Use:   "config [list|get|set|set-key]",
		Short: "Manage configuration",
		Long: `Manage frontend-tester configuration.

Example:
  frontend-tester config list
  frontend-tester config get --key llm.model
  frontend-tester config set --key llm.model --value gpt-4o
  frontend-tester config set-key --key anthropic --value sk-ant-...`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"list", "get", "set", "set-key"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "list"
			if len(args) == 1 {
				action = args[0]
			}

			path, err := configTarget(globalConfig)
			if err != nil {
				return err
			}

			switch action {
			case "list":
				return configList(path)
			case "get":
				if key == "" {
					return errors.New("--key is required for 'get' action")
				}
				return configGet(path, key)
			case "set":
				if key == "" || value == "" {
					return errors.New("both --key and --value are required for 'set' action")
				}
				return configSet(path, key, value)
			case "set-key":
				if value == "" {
					return errors.New("--value is required for 'set-key' action")
				}
				return configSetKey(path, key, value)
			default:
				return fmt.Errorf("unknown action: %s (use list, get, set or set-key)", action)
			}
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Config key (e.g. 'llm.model'); provider name for set-key")
	cmd.Flags().StringVar(&value, "value", "", "Config value to set")
	cmd.Flags().BoolVarP(&globalConfig, "global", "g", false, "Use the global config file")
	return cmd
}

// configTarget returns the file the config command reads and writes.
func configTarget(global bool) (string, error) {
	switch {
	case configPath != "":
		return configPath, nil
	case global:
		return config.GlobalPath()
	default:
		return config.LocalPath(), nil
	}
}

// readConfig loads path when it exists and falls back to the normal chain otherwise.
func readConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.LoadFile(path)
	}
	cfg, _, err := config.Load("")
	return cfg, err
}

func configList(path string) error {
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}

	p := ui.Stdout
	p.Header(fmt.Sprintf("Configuration (%s)", path))
	width := 0
	entries := cfg.List()
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		p.Println("  %-*s  %s", width, e.Key, e.Value)
	}
	return nil
}

func configGet(path, key string) error {
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	v, err := cfg.Get(key)
	if err != nil {
		return err
	}
	if key == "llm.api_key" && v != "" {
		v = "***"
	}
	ui.Stdout.Println("%s = %v", key, formatValue(v))
	return nil
}

func formatValue(v any) string {
	if items, ok := v.([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func configSet(path, key, value string) error {
	if key == "llm.api_key" {
		return errors.New("API keys are not stored in config files; use 'frontend-tester config set-key'")
	}
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	v, _ := cfg.Get(key)
	ui.Stdout.Success("Updated %s = %s", key, formatValue(v))
	return nil
}

func configSetKey(path, provider, key string) error {
	if provider == "" {
		cfg, err := readConfig(path)
		if err != nil {
			return err
		}
		provider = cfg.LLM.Provider
	}
	if err := config.SetAPIKey(provider, key); err != nil {
		return err
	}
	ui.Stdout.Success("Stored API key for %s in the system keyring", provider)
	return nil
}
