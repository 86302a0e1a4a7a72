// Package cmd implements the CLI application to fit and project factor models.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/factorlab"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the application settings, read from the environment and
// overridden by the global flags.
type Config struct {
	FactorsFile string `env:"FFM_FACTORS_FILE" envDefault:"data/fama_french_5_factor_rets.csv"`
	ReturnsFile string `env:"FFM_RETURNS_FILE" envDefault:"data/yahoo_rets.csv"`
	LogLevel    string `env:"FFM_LOG_LEVEL" envDefault:"warn"`
	GeminiModel string `env:"FFM_GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	RawMarkdown bool   `env:"FFM_RAW_MARKDOWN"`
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config Config

// output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands lists all the subcommands of the application.
var Commands = []subcommands.Command{
	&factorsCmd{},
	&returnsCmd{},
	&assetsCmd{},
	&fitCmd{},
	&projectCmd{},
	&assistCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, group(cmd.Name()))
	}
}

func group(name string) string {
	switch name {
	case "factors", "returns", "assets":
		return "data"
	case "fit", "project":
		return "model"
	default:
		return "help"
	}
}

// Init reads the configuration from the environment and declares the global flags on f.
// It must be called before f is parsed.
func Init(f *flag.FlagSet) error {
	if err := env.Parse(&config); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	f.StringVar(&config.FactorsFile, "factors-file", config.FactorsFile, "path to the factor return table (CSV or XLSX)")
	f.StringVar(&config.ReturnsFile, "returns-file", config.ReturnsFile, "path to the asset return table (CSV or XLSX)")
	f.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level: debug, info, warn, error")
	f.BoolVar(&config.RawMarkdown, "raw", config.RawMarkdown, "print markdown without terminal rendering")
	return nil
}

// SetupLogging configures the global logger to write on stderr at the configured level.
func SetupLogging() error {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	return nil
}

// loadDataset loads the factor and asset tables from the configured files.
func loadDataset() (*factorlab.Dataset, error) {
	ds, err := factorlab.LoadDataset(config.FactorsFile, config.ReturnsFile)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("factors", config.FactorsFile).
		Str("returns", config.ReturnsFile).
		Int("assets", len(ds.Assets().Columns())).
		Msg("dataset loaded")
	return ds, nil
}

// printMarkdown renders md for the terminal, or prints it as is in raw mode.
func printMarkdown(md string) {
	if config.RawMarkdown {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		log.Warn().Err(err).Msg("cannot create markdown renderer")
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// fail reports err on stderr and returns the failure exit status.
func fail(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}
