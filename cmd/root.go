package cmd

import (
	"io"
	"os"

	"github.com/cottand/streamql/frontend/ast"
	"github.com/cottand/streamql/frontend/astdoc"
	"github.com/cottand/streamql/frontend/ilerr"
	"github.com/cottand/streamql/internal/config"
	"github.com/cottand/streamql/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cli")

// options are shared by all subcommands; cfg is set before any of them runs
type options struct {
	cfgFile string
	cfg     *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "streamql [subcommand]",
		Short:        "streamql lowers struct field access in streaming SQL statements",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile, cmd.Flags())
			if err != nil {
				return errors.Wrap(err, "could not load config")
			}
			level, err := cfg.SlogLevel()
			if err != nil {
				return err
			}
			log.SetLevel(level)
			opts.cfg = cfg
			logger.Debug("loaded config", "file", config.FileUsed(), "output", cfg.Output, "level", cfg.LogLevel)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default ./"+config.DefaultConfigFile+")")
	flags.StringP("log-level", "l", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.StringP("output", "o", config.DefaultOutput, "output format: sql, yaml or table")

	root.AddCommand(newLowerCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	return root
}

// readStatements decodes the statement document at path, or stdin if path is "-"
func readStatements(cmd *cobra.Command, path string) ([]ast.Statement, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "could not open statement document")
		}
		defer f.Close()
		r = f
	}

	stmts, err := astdoc.Decode(r)
	var docErrs *ilerr.Errors
	if errors.As(err, &docErrs) {
		logger.Warn("invalid statement document", "path", path, "errors", docErrs)
		return nil, errors.Errorf("errors found in %s:\n%s", path, docErrs.Error())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return stmts, nil
}
