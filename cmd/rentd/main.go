// Command rentd serves the rental contract pipeline over HTTP and renders
// contracts from the command line.
//
//	rentd serve --config rentd.yaml
//	rentd render --answers answers.json --mode template --out contract.pdf
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/orsabag2/rent"
	"github.com/orsabag2/rent/assets"
	"github.com/orsabag2/rent/config"
	"github.com/orsabag2/rent/layout"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "rentd",
	Short:         "Hebrew residential lease contracts: questionnaire, PDF, share and sign",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = newLogger(cfg.Logging.Level, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(serveCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rentd: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("rentd: logging level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("rentd: building logger: %w", err)
	}
	return l, nil
}

// newRenderer builds the contract renderer from the template and font
// settings of c.
func newRenderer(c *config.Config) (*rent.Renderer, error) {
	t := c.Templates
	bundle, err := assets.Load(t.Questions, t.General, t.Master)
	if err != nil {
		return nil, err
	}
	opts := []rent.Option{rent.WithBundle(bundle)}
	if t.TitleSection != "" {
		opts = append(opts, rent.WithTitleSection(t.TitleSection))
	}
	if t.RawValues {
		opts = append(opts, rent.WithRawValues())
	}
	if c.Fonts.Regular != "" {
		fonts, err := layout.LoadFonts(c.Fonts.Regular, c.Fonts.Bold)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rent.WithFonts(fonts))
	}
	return rent.New(opts...)
}
