package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/pkg/config"
)

// contestsCmd represents the contests command
var contestsCmd = &cobra.Command{
	Use:   "contests",
	Short: "List contest folders",
	Long: `List every contest folder under the configured root.

Folders that fail validation (missing audio, missing or duplicate log,
unreadable metadata) are listed with the reason instead of being hidden.`,
	RunE: runContests,
}

func init() {
	rootCmd.AddCommand(contestsCmd)
}

func runContests(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc := contests.NewService(cfg.Contests.Root, cfg.Contests.MetadataFile, cfg.Playback.PreSeconds)
	summaries, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No contest folders found under %s\n", cfg.Contests.Root)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALID\tAUDIO\tCONTACTS\tREASON")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%s\n", s.Name, s.Valid, s.AudioFiles, s.ContactCount, s.Reason)
	}
	return w.Flush()
}
