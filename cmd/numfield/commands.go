package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	livenumber "github.com/lemon3/live-number-formatter"
)

var errNoArguments = errors.New("nothing to do, no arguments given")

func formatValues(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.NArg() == 0 {
		return errNoArguments
	}

	field := livenumber.NewMemoryField("")
	w, err := livenumber.New(field, e.settings, livenumber.WithLogger(e.log), livenumber.WithResolver(e.resolver))
	if err != nil {
		return fmt.Errorf("unable to create field: %w", err)
	}
	defer w.Destroy()

	for _, value := range cmd.Args().Slice() {
		w.SetValue(value)
		if w.Value() == "" {
			e.log.Warn("Not a number", zap.String("value", value))
		}
		fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", value, w.FormattedValue())
	}
	return nil
}

func parseValues(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.NArg() == 0 {
		return errNoArguments
	}

	var seps *livenumber.Separators
	if !cmd.Bool("naive") {
		s, err := e.resolver.Resolve(e.settings.Locale)
		if err != nil {
			return fmt.Errorf("unable to resolve separators: %w", err)
		}
		seps = &s
	}

	var errs error
	for _, text := range cmd.Args().Slice() {
		value, err := livenumber.ParseNumber(text, seps)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", text, value.Trim(0))
	}
	return errs
}

func showSeparators(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	locales := cmd.Args().Slice()
	if len(locales) == 0 {
		if e.settings.Locale == "" {
			return errNoArguments
		}
		locales = []string{e.settings.Locale}
	}

	var errs error
	for _, locale := range locales {
		seps, err := e.resolver.Resolve(locale)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", locale, err))
			continue
		}
		fmt.Fprintf(cmd.Root().Writer, "%s\tdecimal=%q group=%q sizes=%d/%d\n",
			locale, seps.DecimalString(), seps.GroupString(), seps.GroupSize, seps.SecondaryGroupSize)
	}
	return errs
}

func replayScripts(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.NArg() == 0 {
		return errNoArguments
	}

	locale := cmd.String("locale")

	var errs error
	for _, path := range cmd.Args().Slice() {
		script, err := livenumber.LoadScript(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if locale != "" {
			script.Settings.Locale = locale
		}

		transcript, err := script.Run(livenumber.WithLogger(e.log.Named(script.Name)), livenumber.WithResolver(e.resolver))
		fmt.Fprintf(cmd.Root().Writer, "# %s\n", script.Name)
		for _, line := range transcript {
			fmt.Fprintln(cmd.Root().Writer, line)
		}
		if err != nil {
			for _, failure := range multierr.Errors(err) {
				e.log.Error("Expectation failed", zap.String("script", script.Name), zap.Error(failure))
			}
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", script.Name, err))
			continue
		}
		e.log.Info("Script passed", zap.String("script", script.Name), zap.Int("steps", len(script.Steps)))
	}
	return errs
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		e.log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	data, err := livenumber.DumpSettings(e.settings)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	out := cmd.Root().Writer
	if fname != "" {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	} else {
		fname = "STDOUT"
	}
	e.log.Debug("Outputing configuration", zap.String("file", fname))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
