package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	livenumber "github.com/lemon3/live-number-formatter"
)

const appName = "numfield"

type envKey struct{}

// env carries what the global flags produced to the subcommands.
type env struct {
	log      *zap.Logger
	settings livenumber.Settings
	resolver *livenumber.SeparatorResolver
	config   string
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop(), resolver: livenumber.NewSeparatorResolver()}
}

func newLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// initializeAppContext loads configuration after the command line is parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := &env{log: newLogger(cmd.Bool("debug"))}

	e.config = cmd.String("config")
	e.settings = livenumber.DefaultSettings("")
	if e.config != "" {
		s, err := livenumber.LoadSettings(e.config)
		if err != nil {
			return ctx, fmt.Errorf("unable to load settings: %w", err)
		}
		e.settings = s
	}
	if locale := cmd.String("locale"); locale != "" {
		e.settings.Locale = locale
	}

	var opts []livenumber.ResolverOption
	if tables := cmd.StringSlice("separators"); len(tables) > 0 {
		table, err := livenumber.LoadSeparatorTable(tables...)
		if err != nil {
			return ctx, fmt.Errorf("unable to load separator table: %w", err)
		}
		opts = append(opts, livenumber.WithSeparatorTable(table))
	}
	e.resolver = livenumber.NewSeparatorResolver(opts...)

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("locale", e.settings.Locale))
	return context.WithValue(ctx, envKey{}, e), nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	e.log.Debug("Program ended", zap.Strings("parsed args", cmd.Args().Slice()))
	// stderr cannot always be synced, ignore
	_ = e.log.Sync()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	envFromContext(ctx).log.Error("Program ended with error", zap.Error(err))
	errWasHandled = true
}

// newApp builds the command tree. Commands print to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "formats numbers the way a live number input field does",
		HideHelpCommand: true,
		Writer:          out,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load field settings from `FILE` (YAML or JSON)"},
			&cli.StringFlag{Name: "locale", Aliases: []string{"l"}, Usage: "override the settings locale with `TAG`"},
			&cli.StringSliceFlag{Name: "separators", Aliases: []string{"s"}, Usage: "consult separator table `FILE` before x/text"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log rejected edits and other details"},
		},
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Formats plain numbers as the field would display them",
				Action:    formatValues,
				ArgsUsage: "VALUE...",
			},
			{
				Name:   "parse",
				Usage:  "Reads formatted numbers back into plain numbers",
				Action: parseValues,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "naive", Usage: "guess separators instead of using the locale"},
				},
				ArgsUsage: "TEXT...",
			},
			{
				Name:      "separators",
				Usage:     "Shows decimal and group separators of locales",
				Action:    showSeparators,
				ArgsUsage: "LOCALE...",
			},
			{
				Name:      "replay",
				Usage:     "Replays editing scripts and checks their expectations",
				Action:    replayScripts,
				ArgsUsage: "SCRIPT...",
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps the active settings (YAML)",
				Action:    outputConfiguration,
				ArgsUsage: "DESTINATION",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := newApp(os.Stdout)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
