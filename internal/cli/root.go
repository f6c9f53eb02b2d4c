// Package cli provides the command-line interface for umlgen.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/dialect"
	"github.com/syssam/umlgen/internal/cli/commands"
	"github.com/syssam/umlgen/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "umlgen",
		Short: "umlgen - entity descriptors from UML class diagrams",
		Long: `umlgen reads a UML class diagram exported as XMI by Modelio, UML Designer,
GenMyModel or Visual Paradigm, and writes one descriptor per class with its
fields, validations and relationships, along with the order the entities
must be created in.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", "file", used)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(config.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./umlgen.yaml)")
	rootCmd.PersistentFlags().StringP("backend", "b", "", "Storage backend (sql|mongodb|cassandra)")
	rootCmd.PersistentFlags().StringP("editor", "e", "", "Editor used when it cannot be detected (modelio|umldesigner|genmymodel|visualparadigm)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory of the descriptors")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Descriptor format (json|yaml|msgpack)")
	rootCmd.PersistentFlags().String("go-package", "", "Package name of the Go models; none are written when empty")
	rootCmd.PersistentFlags().String("go-output", "", "Output directory of the Go models (default: <output>/<go-package>)")
	rootCmd.PersistentFlags().String("pagination", "", "Pagination hint (no|pager|pagination|infinite-scroll)")
	rootCmd.PersistentFlags().StringSlice("features", nil, "Extra generator features to enable")
	rootCmd.PersistentFlags().Bool("manifest", true, "Write the order manifest next to the descriptors")
	rootCmd.PersistentFlags().Int("workers", 0, "Files written in parallel (default: GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.Backends(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml", "msgpack"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewGenerateCommand(GetConfig))
	rootCmd.AddCommand(commands.NewOrderCommand(GetConfig))
	rootCmd.AddCommand(commands.NewDetectCommand(GetConfig))
	rootCmd.AddCommand(commands.NewWatchCommand(GetConfig))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Backend:    config.DefaultBackend,
		Output:     config.DefaultOutput,
		Format:     config.DefaultFormat,
		Pagination: config.DefaultPagination,
		Manifest:   true,
	}
}
