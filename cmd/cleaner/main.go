package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("fusion cleaner failed", "error", err)
		os.Exit(1)
	}
}
