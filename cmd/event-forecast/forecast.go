package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/event-forecast/internal/config"
	"github.com/iwvelando/event-forecast/internal/forecast"
	"github.com/iwvelando/event-forecast/internal/optimizer"
	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/output"
	"github.com/iwvelando/event-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type forecastOptions struct {
	outputFormat string
	optimize     bool
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	opts := &forecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project every active scenario in the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd.OutOrStdout(), root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", false, "include minimum ticket prices per attendance level")

	return cmd
}

// resolveOutputFormat picks the CLI override, then the config, then pretty.
func resolveOutputFormat(conf *config.Configuration, override string) (string, error) {
	outputFormat := conf.Output.Format
	if override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

func runForecast(w io.Writer, root *rootOptions, opts *forecastOptions) error {
	conf, err := config.LoadConfiguration(root.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, root.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := resolveOutputFormat(conf, opts.outputFormat)
	if err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runForecast"),
		)
	}

	var optimization *optimizer.Result
	if opts.optimize {
		runner, err := optimizer.NewRunner(logger, conf)
		if err != nil {
			return err
		}
		if optimization, err = runner.Run(); err != nil {
			return fmt.Errorf("optimizer execution failed: %w", err)
		}
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Error("failed to compute forecast",
			zap.String("op", "main.runForecast"),
			zap.Error(err),
		)
		return err
	}
	if optimization != nil {
		optimization.Apply(results)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		output.CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, results)
	}
	return nil
}
