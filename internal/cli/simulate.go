package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kazari/internal/placement"
	"kazari/internal/state"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func newSimulateCommand(app *App) *cobra.Command {
	var (
		skip        bool
		maxSeconds  float64
		activitySec float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted headless playthrough",
		Long: `Run a full scripted playthrough: every unoccupied spot is clicked in
order, each mini-activity completes after a fixed duration, and the run
ends when the room completes (or the time budget runs out).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			engine, sims, cfg, err := app.buildRoom(activitySec)
			if err != nil {
				return err
			}

			dt := cfg.TickInterval()
			elapsed := 0.0

			stamp := func() string { return fmt.Sprintf("%6.2fs", elapsed) }
			engine.OnStateChanged(func(old, new state.Progress) {
				fmt.Fprintf(out, "%s %s\n", stamp(),
					eventStyle.Render(fmt.Sprintf("state %s -> %s", old, new)))
			})
			engine.OnItemPlaced(func(spot *placement.Spot, item placement.Item) {
				fmt.Fprintf(out, "%s %s\n", stamp(),
					okStyle.Render(fmt.Sprintf("placed %s at %s", item.Prefab(), spot.ID())))
			})
			engine.OnRoomComplete(func(placed int) {
				fmt.Fprintf(out, "%s %s\n", stamp(),
					okStyle.Render(fmt.Sprintf("room complete with %d items", placed)))
			})

			fmt.Fprintln(out, headerStyle.Render("kazari simulate"))
			fmt.Fprintf(out, "spots=%d threshold=%d hold=%.1fs skip=%v\n\n",
				len(engine.Spots()), engine.Threshold(), cfg.SuccessHold, skip)

			maxTicks := int(maxSeconds / dt)
			for tick := 0; tick < maxTicks && !engine.Done(); tick++ {
				if engine.Progress() == state.ProgressAwaitingPlacement && !engine.CameraMoving() {
					if next := firstOpenSpot(engine.Spots()); next != nil {
						fmt.Fprintf(out, "%s %s\n", stamp(),
							eventStyle.Render("click "+next.ID()))
						engine.ClickSpot(next.ID())
					}
				}
				if skip {
					engine.RequestSkip()
				}

				engine.Tick(dt)
				sims.Tick()
				elapsed += dt
			}

			fmt.Fprintln(out)
			printSpotSummary(out, engine.Spots())

			if !engine.Done() {
				fmt.Fprintln(out, warnStyle.Render(
					fmt.Sprintf("time budget exhausted after %.1fs: %s", elapsed, progressLabel(engine.Progress()))))
				return NewExitError(1)
			}
			fmt.Fprintf(out, "finished in %.2fs (%s)\n", elapsed, progressLabel(engine.Progress()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip", false, "skip success holds as soon as they begin")
	cmd.Flags().Float64Var(&maxSeconds, "max-seconds", 120, "simulated time budget")
	cmd.Flags().Float64Var(&activitySec, "activity-seconds", 0.5, "how long each scripted activity runs")
	return cmd
}

func printSpotSummary(out io.Writer, spots []*placement.Spot) {
	for _, s := range spots {
		mark := warnStyle.Render("open")
		detail := ""
		if s.Occupied() {
			mark = okStyle.Render("occupied")
			detail = " " + s.Item().Prefab()
		}
		fmt.Fprintf(out, "  %-18s %-12s %s%s\n", s.ID(), s.ActivityType(), mark, detail)
	}
}
