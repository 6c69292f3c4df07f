package a2a

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/BerylCAtieno/content-studio/internal/normalize"
)

func artifactName(action models.Action) string {
	switch action {
	case models.ActionCaption:
		return "Caption"
	case models.ActionHashtags:
		return "Hashtags"
	case models.ActionIdeas:
		return "Content Ideas"
	case models.ActionCalendar:
		return "Weekly Calendar"
	}
	return "Result"
}

// formatResult renders a result as markdown for chat clients.
func formatResult(res *dispatch.Result) string {
	var b strings.Builder

	switch data := res.Data.(type) {
	case models.CaptionResult:
		b.WriteString(data.Caption)
		if len(data.Hashtags) > 0 {
			b.WriteString("\n\n")
			b.WriteString(hashtagLine(data.Hashtags))
		}
	case []string:
		b.WriteString(hashtagLine(data))
	case []models.ContentIdea:
		b.WriteString("# Content Ideas\n")
		for i, idea := range data {
			fmt.Fprintf(&b, "\n%d. **%s** (%s)\n   %s\n", i+1, idea.Title, idea.Type, idea.Description)
		}
	case []models.CalendarEntry:
		b.WriteString("# Weekly Calendar\n\n")
		for i, entry := range normalize.CalendarWeek(data) {
			day := models.Weekdays[i]
			if entry == nil {
				fmt.Fprintf(&b, "- **%s**: nothing planned\n", day)
				continue
			}
			fmt.Fprintf(&b, "- **%s** · %s at %s: %s\n", day, platformLabel(entry.Platform), entry.Time, entry.Idea)
		}
	default:
		fmt.Fprintf(&b, "%v", data)
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n\n**Notes:**\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func hashtagLine(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, "#"+strings.TrimPrefix(t, "#"))
	}
	return strings.Join(out, " ")
}

func platformLabel(p models.Platform) string {
	if info, ok := models.PlatformInfo(p); ok {
		return info.Label
	}
	return string(p)
}
