package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "stopwatch/internal/infra/autoload"

	"stopwatch/internal/infra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initApplication(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise application: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, app); err != nil {
		app.Logger.Fatalf(ctx, "%v", err)
	}
}

func run(ctx context.Context, app *application) error {
	ctx = infra.WithCorrelationID(ctx, app.Config.ServiceName)
	infra.LogConfig(ctx, app.Logger, app.Config)

	if _, err := infra.StartMetricsServer(ctx, app.Config.MetricsPort, app.Logger); err != nil {
		return err
	}

	app.Prober.Run(ctx)

	if app.Config.MetricsPort != "" && app.Config.ProbeIntervalMS <= 0 {
		app.Logger.Println(ctx, "single round done, serving metrics until interrupted")
		<-ctx.Done()
	}

	app.Logger.Println(ctx, "probe stopped")
	return nil
}
