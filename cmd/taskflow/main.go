package main

import (
	"log/slog"
	"os"

	"github.com/taskflow/taskflow/adapter/cli"
	"github.com/taskflow/taskflow/adapter/cli/task"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	cli.SetLogger(logger)

	cli.AddCommand(task.Cmd)

	cli.Execute()
}
