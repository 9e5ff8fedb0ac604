package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	EnvFile   string `name:"env-file" default:".env" help:"Optional dotenv file loaded before flags are resolved."`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"CATALOG_LOG_LEVEL" help:"Log level."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"CATALOG_LOG_FORMAT" help:"Log output format."`

	Serve      serveCmd      `cmd:"" help:"Serve the API catalog dashboard."`
	Counts     countsCmd     `cmd:"" help:"Print educational content counts for services."`
	Validate   validateCmd   `cmd:"" help:"Validate a contents catalog, theme config or deployment config."`
	InitConfig initConfigCmd `cmd:"" name:"init-config" help:"Write a starter deployment config."`
}

func main() {
	loadEnvFile(os.Args[1:])

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("catalogctl"),
		kong.Description("API catalog dashboard server and content tooling."),
		kong.UsageOnError(),
	)
	logger := newLogger(os.Stderr, app.LogLevel, app.LogFormat)
	slog.SetDefault(logger)
	ctx.Bind(logger)
	ctx.BindTo(context.Background(), (*context.Context)(nil))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadEnvFile runs before kong so env fallbacks see the dotenv values.
func loadEnvFile(args []string) {
	path := ".env"
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			path = value
		} else if arg == "--env-file" && i+1 < len(args) {
			path = args[i+1]
		}
	}
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "catalogctl: load %s: %v\n", path, err)
	}
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
