// Command ukdata-mcp serves UK bank holiday and police data as MCP tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/ukdata-mcp/internal/app"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/config"
)

var (
	configFiles []string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "ukdata-mcp",
	Short: "MCP server for UK bank holidays and data.police.uk",
	Long: `ukdata-mcp exposes the gov.uk bank holidays feed and the data.police.uk API
as MCP tools, with a local response cache and a shared outbound rate limit.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ukdata-mcp version %s\n", common.GetFullVersion())
	},
}

// loadConfig merges defaults, config files, and env overrides. Without
// --config, ukdata-mcp.toml in the working directory is used if present.
func loadConfig() (*config.Config, error) {
	paths := configFiles
	if len(paths) == 0 {
		for _, path := range []string{"ukdata-mcp.toml", "config/ukdata-mcp.toml"} {
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(paths...)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newApp loads configuration and builds the application.
func newApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppFromConfig(cfg)
}

func newAppFromConfig(cfg *config.Config) (*app.App, error) {
	logger := common.NewLoggerFromConfig(cfg.Logging)
	return app.New(cfg, logger)
}

func main() {
	common.LoadVersionFromFile()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
