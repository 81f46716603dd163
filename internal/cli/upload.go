package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/formatter"
	"github.com/yildizm/jim/internal/picker"
	"github.com/yildizm/jim/internal/workflow"
)

var (
	uploadExercise string
	uploadPick     bool
	uploadSaveDir  string
	uploadAnyFile  bool
)

// videoPicker is replaced in tests
var videoPicker picker.Picker = picker.Native{}

func newUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [video]",
		Short: "Upload a video for form analysis",
		Long: `Upload a recorded exercise video and print the analysis result.

The result shows the service message, the processed video URL and the
average injury probability exactly as returned. Fields the service omits
are left out.

Examples:
  jim upload --exercise squat lift.mp4
  jim upload -e front_squat --pick
  jim upload -e squat lift.mp4 --save ./processed --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().StringVarP(&uploadExercise, "exercise", "e", "", "exercise type (see 'jim exercises')")
	cmd.Flags().BoolVar(&uploadPick, "pick", false, "choose the video with the native file dialog")
	cmd.Flags().StringVar(&uploadSaveDir, "save", "", "download the processed video into this directory")
	cmd.Flags().BoolVar(&uploadAnyFile, "any-file", false, "skip the upload.extensions filter")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	exerciseType, err := resolveExercise(uploadExercise, cfg.UploadExercise())
	if err != nil {
		return err
	}

	path, err := resolveVideoPath(args, cfg.Upload.Extensions)
	if err != nil {
		return err
	}

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, submitErr := uploadVideo(ctx, client, exerciseType, path)
	if errors.Is(submitErr, workflow.ErrNotReady) {
		return fmt.Errorf("an exercise type is required: use --exercise or upload.default_exercise (one of: %s)",
			strings.Join(exercise.Names(), ", "))
	}
	if submitErr != nil && state.Phase == workflow.PhaseIdle {
		return submitErr
	}

	if err := writeReport(cmd.OutOrStdout(), formatter.UploadReport(state, client.VideoURL)); err != nil {
		return err
	}
	if submitErr != nil {
		return submitErr
	}

	if uploadSaveDir != "" && state.Result.VideoURL != nil {
		dest := filepath.Join(uploadSaveDir, filepath.Base(*state.Result.VideoURL))
		if err := client.Download(ctx, *state.Result.VideoURL, dest); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved processed video to %s\n", dest)
	}
	return nil
}

// uploadVideo runs one upload workflow to completion
func uploadVideo(ctx context.Context, s workflow.VideoSubmitter, t exercise.Type, path string) (workflow.UploadState, error) {
	upload := workflow.NewUpload(newLogger("upload"))
	if t.IsSet() {
		if err := upload.SelectExerciseType(t); err != nil {
			return upload.Snapshot(), err
		}
	}

	file, err := workflow.FileFromPath(path)
	if err != nil {
		return upload.Snapshot(), err
	}
	upload.SelectFile(file)

	err = upload.Submit(ctx, s)
	return upload.Snapshot(), err
}

// resolveVideoPath takes the positional path or asks the native dialog
func resolveVideoPath(args []string, extensions []string) (string, error) {
	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case uploadPick:
		selected, err := videoPicker.SelectVideo(extensions)
		if err != nil {
			return "", err
		}
		path = selected
	default:
		return "", fmt.Errorf("a video is required: pass a path or use --pick")
	}

	if !uploadAnyFile && len(extensions) > 0 && !picker.HasExtension(path, extensions) {
		return "", fmt.Errorf("unsupported video %s (accepted: %s; use --any-file to override)",
			filepath.Base(path), strings.Join(extensions, ", "))
	}
	return path, nil
}
