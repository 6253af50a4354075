package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate exam questions and print them as JSON",
	Long: `Generate multiple-choice questions for a topic and print the result
to stdout as JSON. Progress for multi-batch runs is written to stderr.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Topic to generate questions for (required)")
	generateCmd.Flags().String("description", "", "Optional topic description (max 300 characters)")
	generateCmd.Flags().StringSlice("subtopics", nil, "Optional subtopics to cover")
	generateCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium, hard, or mixed")
	generateCmd.Flags().Int("count", 5, "Number of questions to generate (1-50)")
	generateCmd.Flags().Int("choices", 4, "Choices per question: 4 or 5")
	generateCmd.Flags().String("language", "ko", "Question language: ko or en")
	generateCmd.Flags().String("validation", "light", "Validation level: none, light, or strict")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	svc, err := newService(cmd, logger)
	if err != nil {
		return err
	}

	topic, _ := cmd.Flags().GetString("topic")
	description, _ := cmd.Flags().GetString("description")
	subtopics, _ := cmd.Flags().GetStringSlice("subtopics")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	choices, _ := cmd.Flags().GetInt("choices")
	language, _ := cmd.Flags().GetString("language")
	validation, _ := cmd.Flags().GetString("validation")

	req := questiongen.GenerationRequest{
		Topic:           topic,
		Description:     description,
		Subtopics:       subtopics,
		Difficulty:      questiongen.Difficulty(strings.ToLower(difficulty)),
		Count:           count,
		ChoiceCount:     choices,
		Language:        questiongen.Language(strings.ToLower(language)),
		ValidationLevel: questiongen.ValidationLevel(strings.ToLower(validation)),
	}

	questions, err := svc.GenerateWithProgress(cmd.Context(), req, func(p questiongen.BatchProgress) {
		fmt.Fprintf(os.Stderr, "batch %d/%d: %d/%d questions\n",
			p.CurrentBatch, p.TotalBatches, p.QuestionsGenerated, p.TotalQuestions)
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}
