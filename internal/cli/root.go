package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
	"github.com/shaiso/scriptdeck/internal/config"
	"github.com/shaiso/scriptdeck/internal/telemetry"
)

// NewRootCmd создаёт корневую команду scriptdeck со всеми группами.
//
// Конфигурация загружается в PersistentPreRunE: defaults → YAML → env,
// затем поверх применяются флаги --api-url, --timeout и --header.
func NewRootCmd(version string) *cobra.Command {
	var configPath string
	var apiURL string
	var timeout time.Duration
	var headers []string
	var jsonOutput bool

	var api *client.Client

	rootCmd := &cobra.Command{
		Use:           "scriptdeck",
		Short:         "scriptdeck CLI — script and workflow automation console",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Context(), configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("api-url") {
			cfg.APIURL = apiURL
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Timeout = timeout
		}
		for _, h := range headers {
			parts := strings.SplitN(h, "=", 2)
			if len(parts) != 2 || parts[0] == "" {
				return fmt.Errorf("invalid header format %q, expected KEY=VALUE", h)
			}
			cfg.Headers[parts[0]] = parts[1]
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Логи в stderr: stdout занят данными.
		logger := telemetry.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

		api = client.New(client.Config{
			BaseURL: cfg.APIURL,
			Headers: cfg.Headers,
			Timeout: cfg.Timeout,
		}, client.WithLogger(logger))
		return nil
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to YAML config (default $"+config.EnvConfigPath+")")
	flags.StringVar(&apiURL, "api-url", "", "API base URL (e.g. http://localhost:5000/api)")
	flags.DurationVar(&timeout, "timeout", 0, "Request timeout")
	flags.StringArrayVar(&headers, "header", nil, "Extra request header as KEY=VALUE (repeatable)")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *client.Client { return api }
	outputFn := func() *Output {
		return NewOutputTo(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), jsonOutput)
	}

	rootCmd.AddCommand(
		NewScriptCmd(clientFn, outputFn),
		NewExecutionCmd(clientFn, outputFn),
		NewScheduleCmd(clientFn, outputFn),
		NewFileCmd(clientFn, outputFn),
		NewEnvironmentCmd(clientFn, outputFn),
		NewCategoryCmd(clientFn, outputFn),
		NewTagCmd(clientFn, outputFn),
		NewWorkflowCmd(clientFn, outputFn),
		NewWorkflowExecutionCmd(clientFn, outputFn),
		NewTemplateCmd(clientFn, outputFn),
		NewVariableCmd(clientFn, outputFn),
	)

	return rootCmd
}
