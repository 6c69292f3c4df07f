package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/content-studio/internal/models"
)

// Expected counts the prompts ask the model for.
const (
	HashtagCount  = 15
	IdeaCount     = 5
	CalendarCount = 7
)

// Expectations describe what the prompt asked for.
type Expectations struct {
	Platform  models.Platform
	Platforms []models.Platform
}

// Inspect lists where a decoded value drifts from what its prompt asked
// for. It never fails; an empty result means no drift was found.
func Inspect(action models.Action, value any, want Expectations) []string {
	var issues []string

	switch v := value.(type) {
	case models.CaptionResult:
		if cfg, ok := models.PlatformInfo(want.Platform); ok {
			if n := utf8.RuneCountInString(v.Caption); n > cfg.MaxLength {
				issues = append(issues, fmt.Sprintf("caption is %d characters, %s allows %d", n, cfg.Label, cfg.MaxLength))
			}
		}
		if strings.TrimSpace(v.Caption) == "" {
			issues = append(issues, "caption is empty")
		}
		issues = append(issues, prefixedTags(v.Hashtags)...)
	case []string:
		if len(v) != HashtagCount {
			issues = append(issues, fmt.Sprintf("expected %d hashtags, got %d", HashtagCount, len(v)))
		}
		issues = append(issues, prefixedTags(v)...)
	case []models.ContentIdea:
		if len(v) != IdeaCount {
			issues = append(issues, fmt.Sprintf("expected %d ideas, got %d", IdeaCount, len(v)))
		}
	case []models.CalendarEntry:
		if len(v) != CalendarCount {
			issues = append(issues, fmt.Sprintf("expected %d calendar days, got %d", CalendarCount, len(v)))
		}
		allowed := make(map[models.Platform]bool, len(want.Platforms))
		for _, p := range want.Platforms {
			allowed[p] = true
		}
		for _, entry := range v {
			if len(allowed) > 0 && !allowed[entry.Platform] {
				issues = append(issues, fmt.Sprintf("%s uses platform %q outside the requested set", entry.Day, entry.Platform))
			}
		}
	}

	return issues
}

func prefixedTags(tags []string) []string {
	var issues []string
	for _, tag := range tags {
		if strings.HasPrefix(tag, "#") {
			issues = append(issues, fmt.Sprintf("hashtag %q has a leading #", tag))
		}
	}
	return issues
}

// CalendarWeek lays entries out Monday through Sunday. Days the model
// skipped come back as nil so the caller can render "no post".
func CalendarWeek(entries []models.CalendarEntry) []*models.CalendarEntry {
	week := make([]*models.CalendarEntry, len(models.Weekdays))
	for i := range entries {
		for d, day := range models.Weekdays {
			if week[d] == nil && strings.EqualFold(strings.TrimSpace(entries[i].Day), day) {
				week[d] = &entries[i]
				break
			}
		}
	}
	return week
}
