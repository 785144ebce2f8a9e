// Package cli implements the kazari command-line interface.
//
// Commands:
//   - simulate: headless scripted playthrough of a room to completion
//   - play: interactive terminal playthrough
//   - layout: print the resolved room layout
//
// The CLI is the "external collaborator" surface around the orchestration
// core: it builds a [room.Engine] from configuration, drives its tick loop,
// and observes its notifications. It never mutates orchestration state
// except through the engine's input methods.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kazari/internal/config"
	"kazari/internal/placement"
	"kazari/internal/room"
	"kazari/internal/sim"
	"kazari/internal/state"
)

// App holds the dependencies shared by all commands.
type App struct {
	// Out is where command output is written. Defaults to stdout.
	Out io.Writer

	// Logger is the orchestration logger. Nil means quiet (no-op)
	// unless --verbose enables a development logger.
	Logger *zap.Logger

	configPath string
	layoutPath string
	verbose    bool
}

// ExecuteResult is the outcome of a CLI invocation.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// NewRootCommand builds the kazari root command with all subcommands and
// persistent flags registered.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kazari",
		Short: "Room-decorating mini-game orchestration",
		Long: `kazari coordinates a short interactive loop: clicking a placement spot
triggers a mini-activity, the camera moves to frame it, and the activity's
result becomes a placed decoration. The room completes when enough
decorations are placed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "path to kazari.yaml (default: auto-discover)")
	root.PersistentFlags().StringVar(&app.layoutPath, "layout", "", "path to room.yaml (default: auto-discover, then built-in room)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log orchestration events to stderr")

	root.AddCommand(newSimulateCommand(app))
	root.AddCommand(newPlayCommand(app))
	root.AddCommand(newLayoutCommand(app))

	return root
}

// RunWithConfig executes the CLI with the given arguments, writing output
// to out. It never calls os.Exit, making it usable from tests.
func RunWithConfig(args []string, out io.Writer) ExecuteResult {
	app := &App{Out: out}
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	if err := root.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{}
}

// Execute runs the CLI against os.Args and exits the process with the
// resulting code.
func Execute() {
	result := RunWithConfig(os.Args[1:], os.Stdout)
	os.Exit(result.ExitCode)
}

// logger returns the app's orchestration logger, building a development
// logger on first use when --verbose is set.
func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	if a.verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		log, err := cfg.Build()
		if err == nil {
			a.Logger = log
			return log
		}
	}
	a.Logger = zap.NewNop()
	return a.Logger
}

// buildRoom loads configuration and layout and assembles a room engine
// backed by scripted sim modules that complete after activeSeconds of
// activity time.
func (a *App) buildRoom(activeSeconds float64) (*room.Engine, sim.Set, *config.Config, error) {
	cfg, err := config.NewLoader().Load(a.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	layoutPath := a.layoutPath
	if layoutPath == "" {
		layoutPath = cfg.LayoutPath
	}
	layout, err := config.LoadLayout("", layoutPath)
	if err != nil {
		return nil, nil, nil, err
	}

	ticks := int(activeSeconds * float64(cfg.TickRate))
	sims := sim.DefaultSet(ticks)

	engine, err := room.NewEngine(room.Setup{
		Config:  cfg,
		Layout:  layout,
		Modules: sims.Modules(),
		Logger:  a.logger(),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return engine, sims, cfg, nil
}

// firstOpenSpot returns the first unoccupied spot, or nil when every spot
// is filled.
func firstOpenSpot(spots []*placement.Spot) *placement.Spot {
	for _, s := range spots {
		if !s.Occupied() {
			return s
		}
	}
	return nil
}

// progressLabel renders a progress state for display.
func progressLabel(p state.Progress) string {
	switch p {
	case state.ProgressAwaitingPlacement:
		return "awaiting placement"
	case state.ProgressActivityInProgress:
		return "activity in progress"
	case state.ProgressRoomComplete:
		return "room complete"
	default:
		return string(p)
	}
}
