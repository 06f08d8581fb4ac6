package cli

import (
	"fmt"
	"strings"

	"github.com/hstrade/harmonize/internal/model"
)

// RenderResult renders a classification result as a styled table for
// terminal display.
func RenderResult(result *model.ClassificationResult) string {
	var sb strings.Builder

	sb.WriteString(FormatTitle(fmt.Sprintf("Classification: %s", result.Query)))
	sb.WriteString("\n")

	if len(result.Results) == 0 {
		sb.WriteString(FormatWarning("No matches found"))
		if result.FallbackRecommended != "" {
			sb.WriteString("\n")
			sb.WriteString(SubtleStyle.Render(fmt.Sprintf("Suggested fallback: %s", result.FallbackRecommended)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	header := fmt.Sprintf("%-4s %-16s %-6s %-50s %s", "#", "Code", "Conf", "Description", "Match")
	sb.WriteString(TableHeaderStyle.Render(header))
	sb.WriteString("\n")

	for i, entry := range result.Results {
		desc := entry.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}
		row := fmt.Sprintf("%-4d %-16s %-6d %-50s %s",
			i+1, model.FormatCode(entry.Code), entry.Confidence, desc, entry.MatchType)
		sb.WriteString(confidenceStyle(entry.Confidence)(row))
		sb.WriteString("\n")
	}

	top := result.Results[0]
	sb.WriteString("\n")
	sb.WriteString(FormatSuccess(fmt.Sprintf("Best: %s (%s, %d%%)",
		model.FormatCode(top.Code), top.ConfidenceLabel, top.Confidence)))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf("MFN %.1f%% | USMCA %.1f%% | completed in %s",
		top.MFNRate, top.USMCARate, result.ExecutionTime)))
	sb.WriteString("\n")

	return sb.String()
}

// RenderLookup renders a direct code lookup result.
func RenderLookup(result *model.ClassificationResult) string {
	var sb strings.Builder

	sb.WriteString(FormatTitle(fmt.Sprintf("Lookup: %s", result.Query)))
	sb.WriteString("\n")

	if len(result.Results) == 0 {
		sb.WriteString(FormatWarning("No catalog entry found"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, entry := range result.Results {
		sb.WriteString(BoldStyle.Render(entry.DisplayText))
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render(fmt.Sprintf("  chapter %d | MFN %.1f%% | USMCA %.1f%% | %s",
			entry.Chapter, entry.MFNRate, entry.USMCARate, entry.ConfidenceLabel)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func confidenceStyle(confidence int) func(...string) string {
	switch {
	case confidence >= 80:
		return SuccessStyle.Render
	case confidence >= 50:
		return WarningStyle.Render
	default:
		return SubtleStyle.Render
	}
}
