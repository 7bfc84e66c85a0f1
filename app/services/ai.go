package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
)

const recommendationSystemPrompt = "You are a digital transformation consultant. " +
	"You receive the results of a digital maturity assessment (scores from 0 to 5) " +
	"and write concrete, prioritized recommendations for the company. " +
	"Be specific and practical, avoid generic advice, and keep the answer under 600 words."

// GenerateRecommendations asks the language model for improvement
// recommendations based on the session's classification and Pareto analysis.
func GenerateRecommendations(ctx context.Context, session *models.AssessmentSession, report *scoring.Report, classification *scoring.Classification, pareto *scoring.ParetoAnalysis) (string, error) {
	apiKey := config.AppConfig.OpenAIAPIKey
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(config.AppConfig.OpenAIModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(recommendationSystemPrompt),
			openai.UserMessage(buildPrompt(session, report, classification, pareto)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("recommendation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("recommendation request returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("recommendation request returned an empty answer")
	}
	return text, nil
}

func buildPrompt(session *models.AssessmentSession, report *scoring.Report, classification *scoring.Classification, pareto *scoring.ParetoAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company: %s\n", session.CompanyName)
	if session.Sector != nil {
		fmt.Fprintf(&b, "Sector: %s\n", *session.Sector)
	}
	if session.CompanySize != nil {
		fmt.Fprintf(&b, "Size: %s\n", *session.CompanySize)
	}
	fmt.Fprintf(&b, "Overall maturity: %s (scale 0-5)\n\n", ratingText(report.FinalRate))

	b.WriteString("Process ratings:\n")
	for _, p := range report.Processes {
		fmt.Fprintf(&b, "- %s: %s\n", p.Process, ratingText(p.Rating))
	}

	writeBucket(&b, "Critical areas (score <= 1)", classification.Critical)
	writeBucket(&b, "Weaknesses (score between 1 and 2)", classification.Weaknesses)
	writeBucket(&b, "Strengths (score >= 3)", classification.Strengths)

	if pareto != nil && len(pareto.ByProcess) > 0 {
		b.WriteString("\nPareto priorities (share of total maturity gap):\n")
		for _, e := range pareto.ByProcess {
			marker := ""
			if e.IsCritical {
				marker = " [priority]"
			}
			fmt.Fprintf(&b, "- %s: %.1f%%%s\n", e.Name, e.GapPercent, marker)
		}
	}

	return b.String()
}

func writeBucket(b *strings.Builder, title string, rows []scoring.ActivityReport) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, row := range rows {
		fmt.Fprintf(b, "- %s / %s: %s\n", row.Process, row.Activity, ratingText(row.Average))
	}
}
