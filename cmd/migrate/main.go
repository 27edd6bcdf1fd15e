package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/observability"
)

const usage = "usage: migrate [up|down|status]"

var errUsage = errors.New(usage)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if len(os.Args) < 2 || !validCommand(os.Args[1]) {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	err = run(context.Background(), db.DB, os.Args[1], os.Stdout)
	db.Close()
	if err != nil {
		log.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func validCommand(cmd string) bool {
	switch cmd {
	case "up", "down", "status":
		return true
	}
	return false
}

func run(ctx context.Context, db *sql.DB, cmd string, out io.Writer) error {
	switch cmd {
	case "up":
		return database.Up(ctx, db)
	case "down":
		return database.Down(ctx, db)
	case "status":
		statuses, err := database.Status(ctx, db)
		if err != nil {
			return err
		}
		printStatus(out, statuses)
		return nil
	}
	return errUsage
}

func printStatus(out io.Writer, statuses []database.MigrationStatus) {
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(out, "%05d  %-8s %s\n", s.Version, state, s.Path)
	}
}
