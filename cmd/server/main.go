package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/tamabee-group/tama-hr-sub006/internal/app/server"
)

func main() {
	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := server.Run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
