package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/parkero/bl602-ws2811/effects"
	"github.com/parkero/bl602-ws2811/pins"
	"github.com/parkero/bl602-ws2811/ws28xx"
)

// runPatterns plays the startup sequence (solid colors, then a pixel walk
// each way) and settles into a continuous red-green-blue fade cycle.
func runPatterns(ctx context.Context, ls *ws28xx.LogicalStrip, pc *pins.PinControl, logger *zap.Logger) error {
	for _, c := range []ws28xx.Color{ws28xx.Red, ws28xx.Green, ws28xx.Blue, ws28xx.Off} {
		ls.Fill(c)
		ls.TransmitAll(pc)
		if err := sleepCtx(ctx, time.Second); err != nil {
			return err
		}
	}

	walks := []*effects.Wipe{
		effects.NewWipe(ws28xx.Green, ws28xx.Off, 250*time.Millisecond, true),
		effects.NewWipe(ws28xx.Blue, ws28xx.Off, 250*time.Millisecond, false),
	}
	for _, w := range walks {
		if err := playEffect(ctx, w, ls, pc, logger); err != nil {
			return err
		}
	}

	if once {
		return nil
	}

	cycle := effects.NewCycle([]ws28xx.Color{ws28xx.Red, ws28xx.Green, ws28xx.Blue}, 25*time.Second)
	return playEffect(ctx, cycle, ls, pc, logger)
}

// playEffect steps one effect to completion, transmitting one frame per
// step. Effects that never finish run until the context is canceled.
func playEffect(ctx context.Context, e effects.Effect, ls *ws28xx.LogicalStrip, pc *pins.PinControl, logger *zap.Logger) error {
	logger.Info("Starting effect", zap.String("effect", e.Name()))
	e.Start(ls, time.Now())
	for {
		d := e.NextStep(ls, time.Now())
		ls.TransmitAll(pc)
		if d == 0 {
			return nil
		}
		if err := sleepCtx(ctx, d); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
