package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/export"
	"github.com/abhisek/pbi/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answer file without the interactive flow",
	Long: `Score answers read from a YAML file:

  answers:
    EE1: 4        # question code or ID -> 1..5
    2: 3
  demographics:   # optional
    ageRange: 25-34
    jobRole: technology

Missing questions are reported and left out of the category means.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringP("answers", "a", "", "Path to the answer file (required)")
	scoreCmd.Flags().Bool("json", false, "Print the assessment as JSON")
	scoreCmd.Flags().Bool("payload", false, "Print the export envelope as JSON instead of the scores")
	scoreCmd.Flags().Bool("export", false, "Also send complete answers to the configured export endpoint")
	_ = scoreCmd.MarkFlagRequired("answers")
}

type answerFile struct {
	Answers      map[string]int     `yaml:"answers"`
	Demographics demographic.Record `yaml:"demographics"`
}

// parseAnswerFile decodes an answer file against cat. Keys are question
// codes or numeric IDs.
func parseAnswerFile(cat *catalog.Catalog, data []byte) (scoring.Answers, demographic.Record, error) {
	var f answerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, demographic.Record{}, fmt.Errorf("parse answer file: %w", err)
	}

	byCode := make(map[string]int, cat.Len())
	for _, q := range cat.Questions() {
		byCode[q.Code] = q.ID
	}

	answers := make(scoring.Answers, len(f.Answers))
	for k, v := range f.Answers {
		id, ok := byCode[k]
		if !ok {
			n, err := strconv.Atoi(k)
			if err != nil || !cat.Has(n) {
				return nil, demographic.Record{}, fmt.Errorf("unknown question %q", k)
			}
			id = n
		}
		if !catalog.ValidLikert(v) {
			return nil, demographic.Record{}, fmt.Errorf("question %s: value %d outside %d..%d",
				k, v, catalog.LikertMin, catalog.LikertMax)
		}
		if _, dup := answers[id]; dup {
			return nil, demographic.Record{}, fmt.Errorf("question %s answered twice", k)
		}
		answers[id] = v
	}

	for _, field := range demographic.Steps() {
		if v := f.Demographics.Get(field); v != "" && !field.Valid(v) {
			return nil, demographic.Record{}, fmt.Errorf("demographics.%s: unknown value %q", field.Key(), v)
		}
	}
	return answers, f.Demographics, nil
}

type scoreOutput struct {
	Scores     scoring.Scores    `json:"scores"`
	Level      scoring.Level     `json:"level"`
	Validation export.Validation `json:"validation"`
}

func runScore(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("answers")
	asJSON, _ := cmd.Flags().GetBool("json")
	doExport, _ := cmd.Flags().GetBool("export")
	asPayload, _ := cmd.Flags().GetBool("payload")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read answer file: %w", err)
	}

	cat := catalog.Default()
	answers, demo, err := parseAnswerFile(cat, data)
	if err != nil {
		return err
	}

	a := scoring.Assess(answers, cat.Questions())
	v := export.Validate(cat, answers)

	switch {
	case asPayload:
		if err := writeJSON(os.Stdout, export.BuildPayload(cat, answers, demo, time.Now())); err != nil {
			return err
		}
	case asJSON:
		if err := writeJSON(os.Stdout, scoreOutput{Scores: a.Scores, Level: a.Level, Validation: v}); err != nil {
			return err
		}
	default:
		printAssessment(a, v)
	}

	if doExport {
		return exportOnce(cmd, cat, answers, demo)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printAssessment(a scoring.Assessment, v export.Validation) {
	for _, c := range catalog.AllCategories() {
		score := a.Scores.For(c)
		fmt.Printf("%-24s  %4.2f  %s\n", c.DisplayName(), score, scoring.Interpret(c, score).Label)
	}
	fmt.Println()
	fmt.Printf("Level: %s\n\n", a.Level.Name)
	fmt.Println(a.Level.Description)
	fmt.Println()
	fmt.Println("Recommendation:", a.Level.Recommendation)

	if !v.IsComplete {
		fmt.Printf("\n%d of %d questions answered (%d%%). Missing:", v.AnsweredQuestions, v.TotalQuestions, v.CompletionPercentage)
		for _, q := range v.Missing {
			fmt.Printf(" %s", q.Code)
		}
		fmt.Println()
	}
}

// exportOnce sends one record and waits for it, logging to stderr.
func exportOnce(cmd *cobra.Command, cat *catalog.Catalog, answers scoring.Answers, demo demographic.Record) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr, "export")
	d := export.NewDispatcher(cat, newSender(cfg, logger), logger, cfg.Export.Timeout)
	d.Dispatch(uuid.NewString(), answers, demo)
	d.Wait()
	return nil
}
