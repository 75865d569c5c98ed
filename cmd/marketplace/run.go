package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace start: %v\n", err)
		os.Exit(1)
	}

	// wait for a shutdown signal or an internal fx.Shutdowner call
	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace stop: %v\n", err)
		os.Exit(1)
	}
}
