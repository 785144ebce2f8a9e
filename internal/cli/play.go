package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kazari/internal/placement"
	"kazari/internal/room"
	"kazari/internal/session"
	"kazari/internal/sim"
	"kazari/internal/state"
)

var (
	playTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	playDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	playSpotStyle  = lipgloss.NewStyle().PaddingLeft(2)
	playDoneStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

func newPlayCommand(app *App) *cobra.Command {
	var activitySec float64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the room interactively in the terminal",
		Long: `Play a room interactively: number keys click placement spots, space
skips the success hold, q quits. Mini-activities are scripted stand-ins
that complete on their own after a short while.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, sims, cfg, err := app.buildRoom(activitySec)
			if err != nil {
				return err
			}

			m := newPlayModel(engine, sims, cfg.TickInterval())
			engine.OnItemPlaced(func(spot *placement.Spot, item placement.Item) {
				m.note(fmt.Sprintf("placed %s at %s", item.Prefab(), spot.ID()))
			})
			engine.OnStateChanged(func(old, new state.Progress) {
				m.note(fmt.Sprintf("state %s -> %s", old, new))
			})

			program := tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout()))
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&activitySec, "activity-seconds", 2.0, "how long each scripted activity runs")
	return cmd
}

type playTickMsg time.Time

// playModel is the bubbletea model driving the interactive playthrough.
// All engine access happens on the Update goroutine, preserving the
// core's single-threaded contract.
type playModel struct {
	engine *room.Engine
	sims   sim.Set
	dt     float64
	log    *[]string
}

func newPlayModel(engine *room.Engine, sims sim.Set, dt float64) *playModel {
	log := make([]string, 0, 8)
	return &playModel{
		engine: engine,
		sims:   sims,
		dt:     dt,
		log:    &log,
	}
}

func (m *playModel) note(line string) {
	*m.log = append(*m.log, line)
	if len(*m.log) > 6 {
		*m.log = (*m.log)[len(*m.log)-6:]
	}
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playTickMsg:
		m.engine.Tick(m.dt)
		m.sims.Tick()
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.engine.RequestSkip()
		default:
			if idx := spotIndexForKey(msg.String()); idx >= 0 {
				spots := m.engine.Spots()
				if idx < len(spots) {
					m.engine.ClickSpot(spots[idx].ID())
				}
			}
		}
	}
	return m, nil
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(playTitleStyle.Render("kazari"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("state: %s    phase: %s\n",
		progressLabel(m.engine.Progress()), m.engine.Phase()))

	pose := m.engine.CameraPose()
	camera := fmt.Sprintf("camera: (%.2f, %.2f, %.2f)", pose.Position.X, pose.Position.Y, pose.Position.Z)
	if m.engine.CameraMoving() {
		camera += " (moving)"
	}
	b.WriteString(playDimStyle.Render(camera))
	b.WriteString("\n\n")

	for i, s := range m.engine.Spots() {
		mark := "[ ]"
		if s.Occupied() {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %-18s %s", i+1, mark, s.ID(), s.ActivityType())
		b.WriteString(playSpotStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("placed %d of %d\n", m.engine.PlacedCount(), m.engine.Threshold()))

	for _, line := range *m.log {
		b.WriteString(playDimStyle.Render(line))
		b.WriteString("\n")
	}

	if m.engine.Done() {
		b.WriteString("\n")
		b.WriteString(playDoneStyle.Render("room complete! press q to leave"))
		b.WriteString("\n")
	} else if m.engine.Phase() == session.PhaseSuccessHold {
		b.WriteString(playDimStyle.Render("space to skip"))
		b.WriteString("\n")
	}

	b.WriteString(playDimStyle.Render("1-9 click spot · space skip · q quit"))
	b.WriteString("\n")
	return b.String()
}

// spotIndexForKey maps the number keys 1-9 to spot indexes; -1 otherwise.
func spotIndexForKey(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}
