package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
	"github.com/abhisek/pbi/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect recorded assessments",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		level, _ := cmd.Flags().GetString("level")
		if level != "" {
			if _, ok := scoring.LevelByName(level); !ok {
				return fmt.Errorf("unknown level %q", level)
			}
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.ResultRepo().Recent(cmd.Context(), store.QueryOpts{Limit: limit, Level: level})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No assessments recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-20s  %-17s  %5s  %5s  %5s  %s\n",
			"#", "Completed", "Level", "EE", "DE", "PE", "Session")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range results {
			fmt.Printf("%-5d  %-20s  %-17s  %5.2f  %5.2f  %5.2f  %s\n",
				r.Sequence,
				r.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				r.Level,
				r.Scores.Exhaustion, r.Scores.Disengagement, r.Scores.Efficacy,
				r.SessionID,
			)
		}
		return nil
	},
}

var resultsViewCmd = &cobra.Command{
	Use:   "view <sequence|session-id>",
	Short: "Show one assessment with every answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.ResultRepo().Recent(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		r, err := findResult(results, args[0])
		if err != nil {
			return err
		}
		printResult(catalog.Default(), r)
		return nil
	},
}

var errResultNotFound = errors.New("result not found")

// findResult matches ref against a sequence number or a session ID prefix.
func findResult(results []store.Result, ref string) (store.Result, error) {
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, r := range results {
			if r.Sequence == n {
				return r, nil
			}
		}
	}

	var match []store.Result
	for _, r := range results {
		if strings.HasPrefix(r.SessionID, ref) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return store.Result{}, fmt.Errorf("%w: %s", errResultNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return store.Result{}, fmt.Errorf("session prefix %q is ambiguous (%d matches)", ref, len(match))
	}
}

func printResult(cat *catalog.Catalog, r store.Result) {
	fmt.Printf("Assessment #%d\n", r.Sequence)
	fmt.Printf("  Session:    %s\n", r.SessionID)
	fmt.Printf("  Completed:  %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Level:      %s\n", r.Level)
	for _, c := range catalog.AllCategories() {
		score := r.Scores.For(c)
		fmt.Printf("  %-22s %4.2f  %s\n", c.DisplayName()+":", score, scoring.Interpret(c, score).Label)
	}

	if !r.Demographics.IsEmpty() {
		fmt.Println()
		fmt.Println("Demographics:")
		for _, f := range demographic.Steps() {
			if v := r.Demographics.Get(f); v != "" {
				fmt.Printf("  %-20s %s\n", f.Title()+":", f.Label(v))
			}
		}
	}

	fmt.Println()
	fmt.Println("Answers:")
	for _, q := range cat.Questions() {
		v := r.Answers[q.ID]
		answer := catalog.LikertLabel(v)
		if v != 0 {
			answer = fmt.Sprintf("%d %s", v, answer)
		}
		fmt.Printf("  %-4s %-70s %s\n", q.Code, truncate(q.Prompt, 70), answer)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	resultsListCmd.Flags().IntP("limit", "n", 20, "Maximum number of results")
	resultsListCmd.Flags().String("level", "", "Only show results at this level (e.g. \"Burnout\")")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsViewCmd)
}
