package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/ukdata-mcp/internal/config"
	"github.com/bobmcallan/ukdata-mcp/internal/server"
)

var (
	servePort      int
	serveHost      string
	serveTransport string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio or streamable HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Server port (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Server host (overrides config)")
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "", "Transport: stdio or http (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config.ApplyFlagOverrides(cfg, servePort, serveHost, serveTransport)

	application, err := newAppFromConfig(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	logger := application.Logger
	logger.Info().
		Str("transport", cfg.Server.Transport).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	if strings.EqualFold(cfg.Server.Transport, "stdio") {
		// stdout carries JSON-RPC; logs go to stderr.
		return mcpserver.ServeStdio(application.MCPServer)
	}

	srv := server.New(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigChan:
		logger.Info().Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}
