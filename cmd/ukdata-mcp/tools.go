package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	ukmcp "github.com/bobmcallan/ukdata-mcp/internal/mcp"
)

var toolsGroup string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the MCP tool catalog",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tool with its default cache age",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tGROUP\tMAX AGE\tDESCRIPTION")
		for _, ct := range ukmcp.Catalog() {
			if toolsGroup != "" && ct.Group != toolsGroup {
				continue
			}
			maxAge := "-"
			if ct.Cached {
				maxAge = fmt.Sprintf("%ds", ct.DefaultMaxAgeSeconds())
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ct.Name, ct.Group, maxAge, ct.Description)
		}
		return w.Flush()
	},
}

var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value ...]",
	Short: "Invoke one tool and print its JSON result",
	Example: `  ukdata-mcp call get_next_bank_holidays region=scotland limit=3
  ukdata-mcp call get_crimes_street_point lat=52.629729 lng=-1.131592 date=2024-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseToolArgs(args[1:])
		if err != nil {
			return err
		}

		application, err := newApp()
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Tools.Call(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		for _, c := range result.Content {
			if text, ok := c.(mcp.TextContent); ok {
				fmt.Fprintln(cmd.OutOrStdout(), indentJSON(text.Text))
			}
		}
		if result.IsError {
			return fmt.Errorf("tool %s failed", args[0])
		}
		return nil
	},
}

func init() {
	toolsListCmd.Flags().StringVarP(&toolsGroup, "group", "g", "", "Only list tools in this group (holidays, police, server)")
	toolsCmd.AddCommand(toolsListCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
}

// parseToolArgs turns key=value pairs into tool arguments. Values that parse
// as booleans or numbers are passed as such; everything else is a string.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}
		args[key] = parseValue(value)
	}
	return args, nil
}

func parseValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	// YYYY-MM and similar stay strings.
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func indentJSON(text string) string {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return text
	}
	return string(out)
}
