package main

import (
	"errors"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the per-invocation configuration and logger shared by all
// subcommands.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newApp() *app {
	return &app{v: viper.New()}
}

// execute runs the command line and returns the process exit code. The
// --no-color setting only lasts for this call.
func (a *app) execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defer func(noColor bool) { color.NoColor = noColor }(color.NoColor)

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return 0
	}
	reportError(stderr, err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dotparse",
		Short: "Graphviz DOT parser",
		Long:  "dotparse parses Graphviz DOT documents and prints, reformats, lints or summarizes them.",

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			if a.v.GetBool("no_color") {
				color.NoColor = true
			}
			return a.initLogger()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default: ./.dotparse.yaml if present)")
	flags.String("kind", "auto", "Graph kind: auto, directed or undirected")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.Bool("debug", false, "Debug logging")
	flags.Bool("no-color", false, "Disable colored output")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("kind", flags.Lookup("kind"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("no_color", flags.Lookup("no-color"))

	root.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newFmtCmd(a),
		newLintCmd(a),
		newInspectCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("DOTPARSE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		return a.v.ReadInConfig()
	}

	a.v.SetConfigName(".dotparse")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// initLogger builds the zap logger unless one was supplied up front.
func (a *app) initLogger() error {
	if a.log != nil {
		return nil
	}

	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if a.v.GetBool("debug") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if color.NoColor {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}
	a.log = logger
	return nil
}
