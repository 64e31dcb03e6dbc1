package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-view/pkg/config"
	"github.com/goliatone/go-view/pkg/render"
)

type rootOptions struct {
	configPath string
	basePath   string
	layout     string
	dataPath   string
	set        []string
	ask        []string
	output     string
	logLevel   string
}

func newRootCmd(prompter Prompter) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "view-render [template]",
		Short:         "Render a template, decorated with an optional layout",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts, args[0], prompter, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	flags.StringVarP(&opts.basePath, "base", "b", "", "Directory template names resolve against")
	flags.StringVarP(&opts.layout, "layout", "l", "", "Layout template decorating the output")
	flags.StringVarP(&opts.dataPath, "data", "d", "", "YAML or JSON file with template data")
	flags.StringArrayVar(&opts.set, "set", nil, "Set a data value (key=value), repeatable")
	flags.StringArrayVar(&opts.ask, "ask", nil, "Prompt for a data value, repeatable")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	return cmd
}

// config loads the config file, if any, and applies flags the user set.
func (o *rootOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.BasePath = o.basePath
	}
	if flags.Changed("layout") {
		cfg.Layout = o.layout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, opts *rootOptions, name string, prompter Prompter, stdout, stderr io.Writer) error {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	data, err := collectData(ctx, opts, prompter)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.BasePath, append(cfg.Options(), render.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	logger.Debug("renderer ready", "base_path", renderer.BasePath(), "layout", renderer.Layout(), "helpers", renderer.Helpers())

	out, err := renderer.Render(ctx, name, data)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", "path", opts.output, "bytes", len(out))
	return nil
}

// collectData layers the data file, --set values and prompted answers.
func collectData(ctx context.Context, opts *rootOptions, prompter Prompter) (map[string]any, error) {
	data := map[string]any{}
	if opts.dataPath != "" {
		loaded, err := loadData(opts.dataPath)
		if err != nil {
			return nil, err
		}
		data = loaded
	}

	assigned, err := parseAssignments(opts.set)
	if err != nil {
		return nil, err
	}
	for key, value := range assigned {
		data[key] = value
	}

	for _, key := range opts.ask {
		def := ""
		if current, ok := data[key]; ok {
			def = render.ToString(current)
		}
		answer, err := prompter.Input(ctx, key, def)
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", key, err)
		}
		data[key] = answer
	}
	return data, nil
}
