// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/menu"
	"github.com/nibzard/todolist/internal/theme"
	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// IO holds the streams a command reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	stdio  IO
	logger *log.Logger
}

// Run executes the todolist CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// RunWithIO executes the todolist CLI on the given streams.
func RunWithIO(ctx context.Context, args []string, stdio IO) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	fs.Usage = func() {
		printUsage(fs, stdio.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdio.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(stdio.Out)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "version":
		return versionCommand(stdio.Out)
	case "help":
		printUsage(fs, stdio.Out)
		return nil
	case "config":
		return configCommand(cws, stdio, remainingArgs)
	}

	logger, closer, err := logging.Open(stdio.Err, logging.Options{
		Level:      cws.Config.LogLevel,
		Format:     cws.Config.LogFormat,
		Timestamps: cws.Config.LogTimestamps,
		Prefix:     logging.DefaultPrefix,
		File:       cws.Config.LogFile,
	})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()

	a := &app{cfg: cws.Config, stdio: stdio, logger: logger}

	// Execute the subcommand
	switch subcommand {
	case "menu":
		return a.menuCommand(ctx, remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs)
	default:
		fmt.Fprintf(stdio.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, stdio.Err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the task file, honoring an optional path argument.
func (a *app) openStore(name string, args []string) (*todo.Store, error) {
	fs := flag.NewFlagSet("todolist "+name, flag.ContinueOnError)
	fs.SetOutput(a.stdio.Err)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	path, err := taskPath(a.cfg, fs.Args())
	if err != nil {
		return nil, err
	}
	return todo.Open(path, todo.WithLogger(a.logger), todo.WithFsync(a.cfg.Fsync)), nil
}

// menuCommand runs the interactive menu.
func (a *app) menuCommand(ctx context.Context, args []string) error {
	store, err := a.openStore("menu", args)
	if err != nil {
		return err
	}
	m := menu.New(a.stdio.In, a.stdio.Out, store,
		menu.WithTheme(theme.New(a.stdio.Out, a.cfg.Color)),
		menu.WithLogger(a.logger),
	)
	return m.Run(ctx)
}

// tuiCommand launches the TUI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	store, err := a.openStore("tui", args)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, store, theme.New(os.Stdout, a.cfg.Color))
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - A small to-do list kept in a text file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [options] [command] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu [file]   Interactive menu (default command)")
	fmt.Fprintln(w, "  tui [file]    Full-screen task browser")
	fmt.Fprintln(w, "  list [file]   Print tasks in display order")
	fmt.Fprintln(w, "  check [file]  Report invalid lines in the task file")
	fmt.Fprintln(w, "  config        Show effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Only show tasks with this status (pending|done)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TODOLIST_CONFIG, TODOLIST_FILE, TODOLIST_FSYNC, TODOLIST_COLOR, NO_COLOR,")
	fmt.Fprintln(w, "  TODOLIST_LOG_LEVEL, TODOLIST_LOG_FORMAT, TODOLIST_LOG_TIMESTAMPS, TODOLIST_LOG_FILE")
}
