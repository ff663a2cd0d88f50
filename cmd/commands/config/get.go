package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"If no key is provided and running in a terminal, opens an interactive\n" +
			"config viewer where you can browse and edit all settings. Otherwise\n" +
			"all keys are listed.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  zoe config get                 # interactive viewer\n" +
			"  zoe config get default-ttl     # print a single value\n" +
			"  zoe config get -o json         # all values as JSON",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format when listing: text or json")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	if len(args) == 0 {
		if output == "text" && term.IsTerminal(int(os.Stdout.Fd())) {
			if err := tui.RunConfigView(); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}
		return listValues(cmd, output)
	}

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), displayValue(spec, spec.Get(cfg)))
	return nil
}

func listValues(cmd *cobra.Command, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch output {
	case "json":
		values := make(map[string]string, len(config.Keys))
		for _, spec := range config.Keys {
			values[spec.Name] = spec.Get(cfg)
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(values)
	case "text":
		for _, spec := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, displayValue(&spec, spec.Get(cfg)))
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", output)
}

func displayValue(spec *config.KeySpec, value string) string {
	switch {
	case value != "":
		return value
	case spec.Default != "":
		return "not set (default " + spec.Default + ")"
	default:
		return "not set"
	}
}
