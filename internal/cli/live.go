package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/formatter"
	"github.com/yildizm/jim/internal/workflow"
)

var liveExercise string

func newLiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Start a live analysis session",
		Long: `Ask the analysis service to start a live session for an exercise.

The service captures and analyzes the stream itself; this command only
reports whether the session was started.

Examples:
  jim live --exercise squat
  jim live -e romanian_deadlift --output json`,
		Args: cobra.NoArgs,
		RunE: runLive,
	}

	cmd.Flags().StringVarP(&liveExercise, "exercise", "e", "", "exercise type (see 'jim exercises')")

	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	exerciseType, err := resolveExercise(liveExercise, cfg.LiveExercise())
	if err != nil {
		return err
	}

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, submitErr := startLive(ctx, client, exerciseType)
	if errors.Is(submitErr, workflow.ErrNotReady) {
		return fmt.Errorf("an exercise type is required: use --exercise or live.default_exercise (one of: %s)",
			strings.Join(exercise.Names(), ", "))
	}

	if err := writeReport(cmd.OutOrStdout(), formatter.LiveReport(state)); err != nil {
		return err
	}
	return submitErr
}

// startLive runs one live session workflow to completion
func startLive(ctx context.Context, s workflow.LiveStarter, t exercise.Type) (workflow.LiveState, error) {
	live := workflow.NewLive(newLogger("live"))
	if t.IsSet() {
		if err := live.SelectExerciseType(t); err != nil {
			return live.Snapshot(), err
		}
	}
	err := live.Submit(ctx, s)
	return live.Snapshot(), err
}
