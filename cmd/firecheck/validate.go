package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/config"
	"github.com/zero-day-ai/firecheck/firebase"
	"github.com/zero-day-ai/firecheck/internal/logging"
	"github.com/zero-day-ai/firecheck/parser"
	"github.com/zero-day-ai/firecheck/report"
)

type validateOptions struct {
	configPath string
	format     string
	output     string
	noWarnings bool
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate configuration files (default firebase.json)",
		Long: `Validate one or more firebase.json documents. Use "-" to read a document
from standard input. Exits 1 when any document has violations and 2 on
usage, I/O or decode errors.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to .firecheck.yaml (default: search from the working directory)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "document format: auto, json or yaml (default: from the file extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report format: text or json (default: from config)")
	cmd.Flags().BoolVar(&opts.noWarnings, "no-warnings", false, "omit ambiguous-union warnings")
	return cmd
}

func runValidate(cmd *cobra.Command, files []string, opts validateOptions) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.noWarnings {
		cfg.Warnings = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var forced *parser.Format
	if opts.format != "" {
		f, err := parser.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		forced = &f
	}

	outFormat, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	logger := logging.WithComponent(logging.New(stderr, logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}), "validate")
	checker, err := firecheck.New(
		firecheck.WithChecks(cfg.Checks...),
		firecheck.WithWarnings(cfg.Warnings),
		firecheck.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		files = []string{"firebase.json"}
	}

	ctx := cmd.Context()
	code := exitValid
	reports := make([]*firecheck.Report, 0, len(files))
	for _, name := range files {
		doc, err := readDocument(name, cmd.InOrStdin(), forced)
		if err != nil {
			fmt.Fprintf(stderr, "firecheck: %v\n", err)
			code = exitError
			continue
		}

		r, err := checker.Check(ctx, doc)
		if err != nil {
			fmt.Fprintf(stderr, "firecheck: %s: %v\n", name, cause(err))
			code = exitError
			continue
		}
		if !r.Valid && code == exitValid {
			code = exitInvalid
		}
		reports = append(reports, r)
	}

	if err := report.Write(cmd.OutOrStdout(), reports, outFormat); err != nil {
		return err
	}
	if code != exitValid {
		return &exitCodeError{Code: code}
	}
	return nil
}

func readDocument(name string, stdin io.Reader, forced *parser.Format) (firecheck.Document, error) {
	var (
		data []byte
		err  error
	)
	format := parser.FormatFromPath(name)
	if name == "-" {
		data, err = io.ReadAll(stdin)
		name = ""
		format = parser.FormatAuto
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return firecheck.Document{}, err
	}
	if forced != nil {
		format = *forced
	}
	return firecheck.Document{Name: name, Data: data, Format: format}, nil
}

// cause strips the operation prefix of checker errors for terminal output.
func cause(err error) error {
	var fe *firecheck.Error
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(".")
}

func newSchemaCmd() *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the firebase.json JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := firebase.JSONSchema(section)
			if err != nil {
				return fmt.Errorf("%w (sections: %v)", err, firebase.Sections())
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "print a single top-level section")
	return cmd
}
