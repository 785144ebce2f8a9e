package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kazari/internal/config"
)

func newLayoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the resolved room layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			layout, err := config.LoadLayout("", app.layoutPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, headerStyle.Render("room layout"))
			o := layout.Overview
			fmt.Fprintf(out, "overview: pos=%v rot=%v\n\n", o.Position, o.Orientation)

			fmt.Fprintln(out, "activity camera poses:")
			for name, pose := range layout.ActivityPoses {
				fmt.Fprintf(out, "  %-12s pos=%v rot=%v\n", name, pose.Position, pose.Orientation)
			}

			fmt.Fprintln(out, "\nspots:")
			for _, s := range layout.Spots {
				anchor := "-"
				if s.Anchor != nil {
					anchor = fmt.Sprintf("pos=%v", s.Anchor.Position)
				}
				fmt.Fprintf(out, "  %-18s %-12s pos=%v anchor=%s\n", s.ID, s.Activity, s.Pose.Position, anchor)
			}
			return nil
		},
	}
}
