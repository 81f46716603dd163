package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/emoji"
)

var downloadDest string

func newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <video_url>",
		Short: "Download a processed video",
		Long: `Download the annotated video returned by an analysis.

The argument is the video_url reported by "jim upload", relative to the
service's static path.

Examples:
  jim download out/squat.mp4
  jim download out/squat.mp4 --dest ~/Videos/squat-review.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: runDownload,
	}

	cmd.Flags().StringVarP(&downloadDest, "dest", "d", "", "destination file (default: base name of the video)")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	ref := args[0]
	dest := downloadDest
	if dest == "" {
		dest = downloadTarget(ref)
	}
	if dest == "" {
		return fmt.Errorf("cannot derive a file name from %q: use --dest", ref)
	}

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Download(ctx, ref, dest); err != nil {
		return fmt.Errorf("failed to download %s: %w", ref, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved processed video to %s\n", emoji.GetEmoji("success"), dest)
	return nil
}

// downloadTarget is the local file name for a video reference
func downloadTarget(ref string) string {
	base := path.Base(filepath.ToSlash(ref))
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
