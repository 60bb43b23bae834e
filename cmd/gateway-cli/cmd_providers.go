package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"llm-gateway/internal/config"
	"llm-gateway/internal/domain/model"
	"llm-gateway/internal/infrastructure/logger"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Provider configuration commands",
	Long:  `Inspect, validate, and export the gateway's provider configuration.`,
}

var providersValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a providers configuration file",
	Long:  `Decode a providers YAML file and report the first error, if any.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersValidate,
}

var providersShowCmd = &cobra.Command{
	Use:   "show [provider]",
	Short: "Show the active provider configuration",
	Long:  `Display the active provider configuration, or a single provider's entry.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProvidersShow,
}

var providersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active provider configuration as YAML",
	RunE:  runProvidersExport,
}

func init() {
	providersCmd.AddCommand(providersValidateCmd)
	providersCmd.AddCommand(providersShowCmd)
	providersCmd.AddCommand(providersExportCmd)

	providersShowCmd.Flags().String("file", "", "Providers file to load instead of the active configuration")
	providersExportCmd.Flags().String("file", "", "Providers file to load instead of the active configuration")
}

func runProvidersValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	fmt.Printf("Validating providers configuration...\n")
	fmt.Printf("  File: %s\n", path)

	providers, err := config.LoadProvidersConfig(path)
	if err != nil {
		return err
	}

	modelCount := 0
	for pair := providers.Oldest(); pair != nil; pair = pair.Next() {
		modelCount += len(pair.Value.Models)
	}

	fmt.Printf("✓ Valid: %d providers, %d models\n", providers.Len(), modelCount)
	return nil
}

func runProvidersShow(cmd *cobra.Command, args []string) error {
	providers, err := resolveProviders(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		provider, err := model.ParseInferenceProvider(args[0])
		if err != nil {
			return err
		}
		cfg, ok := providers.Get(provider)
		if !ok {
			return fmt.Errorf("provider %s is not configured", provider)
		}
		printProvider(provider, cfg)
		return nil
	}

	for pair := providers.Oldest(); pair != nil; pair = pair.Next() {
		printProvider(pair.Key, pair.Value)
	}
	return nil
}

func runProvidersExport(cmd *cobra.Command, args []string) error {
	providers, err := resolveProviders(cmd)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()

	return enc.Encode(providers)
}

// resolveProviders loads the --file override when given; otherwise it goes
// through the environment-backed config, so PROVIDERS_CONFIG_FILE, LOG_LEVEL,
// and LOG_FORMAT take effect.
func resolveProviders(cmd *cobra.Command) (*config.ProvidersConfig, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		return config.LoadProvidersConfig(file)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg.Providers, nil
}

func printProvider(provider model.InferenceProvider, cfg *config.GlobalProviderConfig) {
	fmt.Printf("%s:\n", provider)
	fmt.Printf("  base-url: %s\n", cfg.BaseURL)
	if cfg.Version != nil {
		fmt.Printf("  version: %s\n", *cfg.Version)
	}
	fmt.Printf("  models (%d):\n", len(cfg.Models))
	for _, id := range cfg.Models {
		switch id.Version.Kind {
		case model.VersionDate:
			fmt.Printf("    - %s (released %s)\n", id, id.Version.Date.Format("2006-01-02"))
		case model.VersionImplicitLatest:
			fmt.Printf("    - %s (latest)\n", id)
		default:
			fmt.Printf("    - %s\n", id)
		}
	}
}
