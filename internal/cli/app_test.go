package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunWithConfigUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	result := RunWithConfig([]string{"definitely-not-a-command"}, &out)

	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
	if result.Err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func TestLayoutCommandPrintsBuiltInRoom(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	t.Setenv("KAZARI_CONFIG_PATH", "")

	var out bytes.Buffer
	result := RunWithConfig([]string{"layout"}, &out)

	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0 (output: %s)", result.ExitCode, out.String())
	}
	for _, want := range []string{"lantern-alcove", "origami-table", "calligraphy-desk", "overview"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("layout output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSimulateCommandCompletesRoom(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	t.Setenv("KAZARI_CONFIG_PATH", "")

	var out bytes.Buffer
	result := RunWithConfig([]string{"simulate", "--skip", "--activity-seconds", "0.1"}, &out)

	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0 (output: %s)", result.ExitCode, out.String())
	}
	for _, want := range []string{
		"state awaiting-placement -> activity-in-progress",
		"placed decor/lantern at lantern-alcove",
		"room complete with 3 items",
		"finished in",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("simulate output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSimulateCommandBudgetExhausted(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	t.Setenv("KAZARI_CONFIG_PATH", "")

	var out bytes.Buffer
	// Too small a budget to even finish one camera transition.
	result := RunWithConfig([]string{"simulate", "--max-seconds", "1"}, &out)

	if result.ExitCode != 1 {
		t.Fatalf("ExitCode = %d, want 1 (output: %s)", result.ExitCode, out.String())
	}
	if !strings.Contains(out.String(), "time budget exhausted") {
		t.Errorf("simulate output missing budget warning:\n%s", out.String())
	}
}
