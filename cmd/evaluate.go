package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pitchkit/pitchkit/internal/evaluate"
)

var evaluateJSON bool

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Emit the evaluation as JSON")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <session.yaml|session.json>",
	Short: "Evaluate a session plan for space per player and intensity flow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var session evaluate.Session
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &session)
		default:
			err = json.Unmarshal(data, &session)
		}
		if err != nil {
			return fmt.Errorf("parse session: %w", err)
		}

		result := evaluate.EvaluateSession(session)
		if evaluateJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := cmd.OutOrStdout()
		for _, a := range result.Activities {
			fmt.Fprintf(w, "%s\n", a.Name)
			fmt.Fprintf(w, "  area: %.0f sqm, %.1f sqm/player (%s)\n", a.AreaSqm, a.AreaPerPlayer, a.Category)
			for _, rec := range a.Recommendations {
				fmt.Fprintf(w, "  - %s\n", rec)
			}
		}
		for _, entry := range result.IntensityProfile {
			fmt.Fprintf(w, "profile: %s\n", entry)
		}
		for _, rec := range result.OverallRecommendations {
			fmt.Fprintf(w, "overall: %s\n", rec)
		}
		return nil
	},
}
