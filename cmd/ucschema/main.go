package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/ucschema"
	"github.com/reoring/ucschema/i18n"
	"github.com/reoring/ucschema/internal/config"
	"github.com/reoring/ucschema/internal/report"
	"github.com/reoring/ucschema/pipeline"
	"github.com/reoring/ucschema/source"
)

// errInvalidRecords makes the process exit non-zero after a report has been
// printed.
var errInvalidRecords = errors.New("invalid records found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "ucschema",
		Short: "Normalize and validate AI use case documents",
		Long: `ucschema checks use case records against the governance platform schema.
- validate: report schema violations (lenient or strict) without changing anything.
- normalize: fill missing fields with defaults and fresh ids, then validate and write the result.
- schema: print the JSON Schema of the selected mode.
Input files may be JSON or YAML and hold one record or an array of records; "-" reads stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().String(config.KeyMode, "lenient", "validation mode: lenient or strict")
	root.PersistentFlags().String(config.KeyLang, "en", "message language (BCP 47, en or ja dictionaries)")
	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level")
	root.PersistentFlags().String(config.KeyLogFormat, "text", "log format: text or json")
	root.PersistentFlags().StringP(config.KeyOutput, "O", "table", "report format: table or json")
	root.PersistentFlags().Int(config.KeyWorkers, 1, "records processed concurrently")
	for _, k := range []string{config.KeyMode, config.KeyLang, config.KeyLogLevel, config.KeyLogFormat, config.KeyOutput, config.KeyWorkers} {
		_ = v.BindPFlag(k, root.PersistentFlags().Lookup(k))
	}

	load := func(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return nil, nil, err
		}
		i18n.SetLanguage(c.Lang)
		return c, c.NewLogger(cmd.ErrOrStderr()), nil
	}

	root.AddCommand(newValidateCmd(load), newNormalizeCmd(v, load), newSchemaCmd(load))
	return root
}

type loader func(cmd *cobra.Command) (*config.Config, *logrus.Logger, error)

func newValidateCmd(load loader) *cobra.Command {
	var stdinFormat string
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate use case documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger, err := load(cmd)
			if err != nil {
				return err
			}
			p := pipeline.NewProcessor(logger,
				pipeline.WithMode(c.ValidationMode()),
				pipeline.WithWorkers(c.Workers),
				pipeline.WithNormalize(false))
			invalid := 0
			for _, path := range args {
				in, err := readInput(cmd.InOrStdin(), path, stdinFormat, c.ValidationMode())
				var de *decodeError
				if errors.As(err, &de) {
					logger.WithField("file", path).WithError(de.err).Warn("unreadable input")
					rep := pipeline.Report{Mode: c.ValidationMode(), Results: []pipeline.Result{
						{Violations: ucschema.Violations{source.ParseViolation(de)}},
					}}
					if err := report.Render(cmd.OutOrStdout(), rep, c.Output); err != nil {
						return err
					}
					invalid++
					continue
				}
				if err != nil {
					return err
				}
				logger.WithFields(logrus.Fields{"file": path, "records": len(in.records)}).Info("validating")
				rep, err := p.ProcessWithFindings(cmd.Context(), in.records, in.findings)
				if err != nil {
					return err
				}
				if err := report.Render(cmd.OutOrStdout(), rep, c.Output); err != nil {
					return err
				}
				invalid += rep.InvalidCount()
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d", errInvalidRecords, invalid)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stdinFormat, "stdin-format", "json", "format of stdin input: json or yaml")
	return cmd
}

func newNormalizeCmd(v *viper.Viper, load loader) *cobra.Command {
	var (
		out           string
		stdinFormat   string
		failOnInvalid bool
	)
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Fill defaults, validate and write normalized use cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger, err := load(cmd)
			if err != nil {
				return err
			}
			in, err := readInput(cmd.InOrStdin(), args[0], stdinFormat, c.ValidationMode())
			if err != nil {
				return err
			}
			p := pipeline.NewProcessor(logger,
				pipeline.WithMode(c.ValidationMode()),
				pipeline.WithWorkers(c.Workers))
			rep, err := p.ProcessWithFindings(cmd.Context(), in.records, in.findings)
			if err != nil {
				return err
			}

			docs := rep.Documents()
			if c.StatusCodes {
				for i, d := range docs {
					docs[i] = ucschema.EncodeStatusCodes(d)
				}
			}
			if err := writeDocuments(cmd.OutOrStdout(), out, docs, c.Indent); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{"written": len(docs), "out": outName(out)}).Info("normalized use cases saved")

			if rep.InvalidCount() > 0 {
				if err := report.Render(cmd.ErrOrStderr(), rep, c.Output); err != nil {
					return err
				}
				if failOnInvalid {
					return fmt.Errorf("%w: %d", errInvalidRecords, rep.InvalidCount())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&stdinFormat, "stdin-format", "json", "format of stdin input: json or yaml")
	cmd.Flags().BoolVar(&failOnInvalid, "fail-on-invalid", false, "exit non-zero when any record is invalid")
	cmd.Flags().Bool(config.KeyIndent, true, "indent JSON output")
	cmd.Flags().Bool(config.KeyStatusCodes, false, "write governance_status as integer code")
	_ = v.BindPFlag(config.KeyIndent, cmd.Flags().Lookup(config.KeyIndent))
	_ = v.BindPFlag(config.KeyStatusCodes, cmd.Flags().Lookup(config.KeyStatusCodes))
	return cmd
}

func newSchemaCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the use case JSON Schema for the configured mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := load(cmd)
			if err != nil {
				return err
			}
			return source.WriteJSON(cmd.OutOrStdout(), ucschema.JSONSchema(c.ValidationMode()), true)
		},
	}
}

// decodeError marks input that was read but could not be decoded.
type decodeError struct {
	path string
	err  error
}

func (e *decodeError) Error() string { return e.path + ": " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

type input struct {
	records  []any
	findings map[int]ucschema.Violations // duplicate keys, strict JSON input only
}

func readInput(stdin io.Reader, path, stdinFormat string, mode ucschema.Mode) (input, error) {
	var (
		data []byte
		err  error
		f    = source.FormatFor(path)
	)
	if path == "-" {
		f = source.FormatJSON
		if stdinFormat == "yaml" {
			f = source.FormatYAML
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return input{}, err
	}
	recs, err := source.Decode(data, f)
	if err != nil {
		return input{}, &decodeError{path: path, err: err}
	}
	in := input{records: recs}
	if mode == ucschema.Strict && f == source.FormatJSON {
		if in.findings, err = source.DuplicateViolations(data); err != nil {
			return input{}, &decodeError{path: path, err: err}
		}
	}
	return in, nil
}

func writeDocuments(stdout io.Writer, path string, docs []ucschema.Document, indent bool) error {
	if path == "" || path == "-" {
		return source.WriteJSON(stdout, docs, indent)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := source.WriteJSON(f, docs, indent); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func outName(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
