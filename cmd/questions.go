package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pbi/internal/catalog"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questionnaire (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		cat := catalog.Default()

		var questions []catalog.Question
		if category != "" {
			c := catalog.Category(category)
			if !c.Valid() {
				return fmt.Errorf("unknown category %q (use one of %s)", category, categoryList())
			}
			questions = cat.ByCategory(c)
		} else {
			questions = cat.Questions()
		}

		// Header.
		fmt.Printf("%3s  %-4s  %-22s  %s\n", "ID", "Code", "Category", "Prompt")
		fmt.Println(strings.Repeat("─", 100))

		for _, q := range questions {
			fmt.Printf("%3d  %-4s  %-22s  %s\n", q.ID, q.Code, q.Category.DisplayName(), q.Prompt)
		}

		fmt.Printf("\n%d questions, answered on a %d-%d scale:", len(questions), catalog.LikertMin, catalog.LikertMax)
		for _, o := range catalog.LikertScale() {
			fmt.Printf("  %d=%s", o.Value, o.Label)
		}
		fmt.Println()
		return nil
	},
}

func categoryList() string {
	names := make([]string, 0, 3)
	for _, c := range catalog.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func init() {
	questionsCmd.Flags().StringP("category", "c", "", "Filter by category (e.g. emotional-exhaustion)")
}
