// ws2811d drives WS28xx LED strips from the topology in its config file,
// playing a startup pattern and then cycling colors until terminated.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/parkero/bl602-ws2811/config"
	"github.com/parkero/bl602-ws2811/gpiodev"
	"github.com/parkero/bl602-ws2811/pins"
	"github.com/parkero/bl602-ws2811/rpi"
	"github.com/parkero/bl602-ws2811/ws28xx"
)

var (
	cfgFile string
	once    bool
)

var rootCmd = &cobra.Command{
	Use:   "ws2811d",
	Short: "ws2811d transmits color frames to WS28xx LED strips over timed GPIO",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "/etc/ws2811d.yaml", "strip topology config file")
	rootCmd.Flags().BoolVar(&once, "once", false, "play the startup sequence and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync() // Ignore error

	cfg, herr := config.Load(cfgFile)
	if herr != nil {
		logger.Error("Invalid configuration",
			zap.Error(herr),
			zap.Strings("advice", herr.Advice()),
		)
		return herr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lines, timer, cleanup, err := buildBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	pc := pins.NewPinControl(timer, lines)
	ls := ws28xx.NewLogicalStrip(cfg.PhysicalStrips())
	logger.Info("Strips configured",
		zap.String("backend", cfg.Backend),
		zap.Int("strips", len(cfg.Strips)),
		zap.Int("leds", ls.NumLEDs()),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runPatterns(ctx, ls, pc, logger)
	})
	err = g.Wait()

	// Leave the LEDs dark whatever the pattern loop was showing.
	ls.Fill(ws28xx.Off)
	ls.TransmitAll(pc)

	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// buildBackend turns the configured line list into OutputLines plus a
// PeriodicTimer from whichever hardware driver the config names. A GPIO of
// -1 yields a nil line, which PinControl replaces with a silent sink.
func buildBackend(cfg *config.Config, logger *zap.Logger) ([]pins.OutputLine, pins.PeriodicTimer, func(), error) {
	switch cfg.Backend {
	case "rpi":
		rp, err := rpi.NewRPi()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("couldn't init RPi backend: %v", err)
		}
		logger.Info("Mapped registers", zap.String("board", rp.Name()))
		lines := make([]pins.OutputLine, len(cfg.Lines))
		for i, lc := range cfg.Lines {
			if lc.GPIO < 0 {
				continue
			}
			l, err := rp.OutputLine(lc.GPIO)
			if err != nil {
				rp.Close() // Ignore error
				return nil, nil, nil, fmt.Errorf("couldn't claim GPIO %d: %v", lc.GPIO, err)
			}
			lines[i] = l
		}
		return lines, rp, func() { rp.Close() }, nil

	case "gpiodev":
		name := cfg.Chip
		if name == "" {
			name = "gpiochip0"
		}
		chip, err := gpiodev.NewChip(name)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("couldn't init gpiodev backend: %v", err)
		}
		lines := make([]pins.OutputLine, len(cfg.Lines))
		closers := make([]*gpiodev.Line, 0, len(cfg.Lines))
		for i, lc := range cfg.Lines {
			if lc.GPIO < 0 {
				continue
			}
			l, err := chip.OutputLine(lc.GPIO)
			if err != nil {
				for _, c := range closers {
					c.Close() // Ignore error
				}
				chip.Close() // Ignore error
				return nil, nil, nil, fmt.Errorf("couldn't claim line %d: %v", lc.GPIO, err)
			}
			lines[i] = l
			closers = append(closers, l)
		}
		cleanup := func() {
			for _, c := range closers {
				c.Close() // Ignore error
			}
			chip.Close() // Ignore error
		}
		return lines, &pins.SpinTimer{}, cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
