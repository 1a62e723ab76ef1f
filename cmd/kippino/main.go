package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/kippino/pkg/chat"
	"github.com/umputun/kippino/pkg/config"
	"github.com/umputun/kippino/pkg/repository"
	"github.com/umputun/kippino/pkg/scheduler"
	"github.com/umputun/kippino/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"kippino.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// load .env if present, real environment takes precedence
	_ = godotenv.Load()

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		lgr.Printf("[ERROR] can't load config: %v", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.Chat.Token)

	lgr.Printf("[INFO] starting kippino version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		lgr.Printf("[ERROR] kippino failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

// run wires the storage, chat client, scheduler and status server together
// and keeps them going until the context is canceled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] can't close database: %v", err)
		}
	}()

	// commands are filled in after the scheduler exists, the chat client
	// only holds the pointer
	commands := &chat.Commands{
		ListKPIs: repos.KPI.ListKPIs,
		DataHint: cfg.Chat.DataHint,
	}

	chatClient := chat.New(chat.Params{
		Token:    cfg.Chat.Token,
		APIURL:   cfg.Chat.APIURL,
		Timeout:  cfg.Chat.Timeout,
		Commands: commands,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		KPIStore:     repos.KPI,
		AnswerStore:  repos.Answer,
		Chat:         chatClient,
		Pauses:       scheduler.NewPauseLedger(cfg.Schedule.PauseTTL),
		PassInterval: cfg.Schedule.PassInterval,
		Debounce:     cfg.Schedule.Debounce,
	})

	commands.ReloadKPIs = sched.Trigger
	commands.ReloadUsers = sched.Trigger
	commands.Pending = sched.ActiveUsers

	srv := server.New(cfg, repos.KPI, repos.Answer, sched, revision, debug)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return chatClient.Run(ctx) })
	group.Go(func() error { return sched.Run(ctx) })
	group.Go(func() error { return srv.Run(ctx) })
	return group.Wait()
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
