package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vietdv277/cwput/cmd"
	"github.com/vietdv277/cwput/internal/logger"
)

func main() {
	log := logger.NewLogger(os.Stderr)
	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background(), log), os.Interrupt)

	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
