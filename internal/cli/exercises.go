package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/exercise"
)

func newExercisesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List the supported exercise types",
		Long: `List the exercise types the analysis service accepts.

Use the name column with --exercise on upload, live and watch.`,
		Args: cobra.NoArgs,
		RunE: runExercises,
	}
}

type exerciseOutput struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func runExercises(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	all := exercise.All

	if strings.EqualFold(getOutputFormat(), "json") {
		items := make([]exerciseOutput, 0, len(all))
		for _, t := range all {
			items = append(items, exerciseOutput{Name: t.String(), Label: t.Label()})
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal exercises: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	cfg := getConfig()
	for _, t := range all {
		marker := " "
		if t == cfg.UploadExercise() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-18s %s\n", marker, t.String(), t.Label())
	}
	return nil
}
