package cmd

import (
	"github.com/autoskip-cli/autoskip/player"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// addWatchFlags registers the flags shared by every command that runs the watcher.
func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("start", false, "Start skipping even when autoStart is off")
	cmd.Flags().StringP("title", "t", "", "Media title shown by mpv")
}

func init() {
	rootCmd.AddCommand(playCmd)
	addWatchFlags(playCmd)
}

var playCmd = &cobra.Command{
	Use:     "play <target>",
	Short:   "Play a file or URL in mpv and skip openings and endings",
	Args:    cobra.ExactArgs(1),
	Example: "  autoskip play ~/anime/ep01.mkv\n  autoskip play https://cache.example.org/ep01.m3u8 --title 'Episode 1'",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		ctx, stop := signalContext()
		defer stop()

		mpv := player.NewMPV()
		handleErr(mpv.Play(ctx, args[0], lo.Must(cmd.Flags().GetString("title"))))

		err := watch(ctx, mpv, lo.Must(cmd.Flags().GetBool("start")))
		closeErr := mpv.Close()
		handleErr(err)
		handleErr(closeErr)
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.Flags().StringP("socket", "s", "", "Path of mpv's --input-ipc-server socket")
	attachCmd.Flags().Bool("start", false, "Start skipping even when autoStart is off")
	lo.Must0(attachCmd.MarkFlagRequired("socket"))
}

var attachCmd = &cobra.Command{
	Use:     "attach",
	Short:   "Skip openings and endings in an mpv that is already running",
	Example: "  mpv --input-ipc-server=/tmp/mpv.sock ep01.mkv &\n  autoskip attach --socket /tmp/mpv.sock",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signalContext()
		defer stop()

		mpv := player.NewMPV()
		handleErr(mpv.Attach(ctx, lo.Must(cmd.Flags().GetString("socket"))))

		handleErr(watch(ctx, mpv, lo.Must(cmd.Flags().GetBool("start"))))
	},
}
