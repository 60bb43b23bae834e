package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"llm-gateway/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gateway-cli",
	Short: "LLM Gateway CLI - provider configuration tooling",
	Long: `gateway-cli is the command-line interface for the LLM gateway.

It inspects, validates, and exports the provider configuration the gateway
starts with.

Examples:
  # Validate a providers file before deploying it
  gateway-cli providers validate config/providers.yml

  # Show the active configuration (embedded default unless overridden)
  gateway-cli providers show
  gateway-cli providers show anthropic

  # Re-encode the active configuration as YAML
  gateway-cli providers export`,
	Version: config.Version,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
