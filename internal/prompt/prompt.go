// Package prompt turns a brand profile and a requested action into the
// instruction text sent to the model. Build is pure: the same inputs always
// produce byte-identical output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-studio/internal/models"
)

// DataOnlyDirective is appended to every prompt. The normalizer cannot
// recover from conversational wrapping around the payload.
const DataOnlyDirective = "Output ONLY the raw JSON data. No markdown, no code fences, no explanations, no text before or after the JSON."

type Extra struct {
	Platforms       []models.Platform
	IncludeHashtags bool
}

// Build returns the prompt for action. The caller is expected to have
// validated the request already.
func Build(action models.Action, brand models.BrandProfile, platform models.Platform, topic string, extra Extra) (string, error) {
	switch action {
	case models.ActionCaption:
		return buildCaption(brand, platform, topic, extra.IncludeHashtags), nil
	case models.ActionHashtags:
		return buildHashtags(brand, topic), nil
	case models.ActionIdeas:
		return buildIdeas(brand, platform, topic), nil
	case models.ActionCalendar:
		return buildCalendar(brand, extra.Platforms), nil
	default:
		return "", fmt.Errorf("no prompt template for action %q", action)
	}
}

func brandBlock(brand models.BrandProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BRAND: %s (%s)\n", brand.Name, industryLabel(brand.Industry))
	fmt.Fprintf(&b, "VOICE: %s (Tone: %s)\n", brand.VoiceDescription, brand.Tone)
	if opt, ok := models.ToneInfo(brand.Tone); ok {
		fmt.Fprintf(&b, "STYLE: %s\n", opt.Description)
	}
	fmt.Fprintf(&b, "TARGET: %s\n", brand.TargetAudience)
	if len(brand.Keywords) > 0 {
		fmt.Fprintf(&b, "KEYWORDS: %s\n", strings.Join(brand.Keywords, ", "))
	}
	return b.String()
}

func buildCaption(brand models.BrandProfile, platform models.Platform, topic string, includeHashtags bool) string {
	cfg := platformConfig(platform)

	hashtagRule := "- Return an empty hashtags array"
	if includeHashtags {
		hashtagRule = "- Add 5-10 relevant hashtags, without the leading #"
	}

	return fmt.Sprintf(`You are an expert social media content creator.

%s
TASK: Write a %s caption about: "%s"

RULES:
- Max %d characters
- Match the %s tone
- Use emojis appropriately
%s

OUTPUT FORMAT: a single JSON object with exactly these fields:
{"caption": "Your caption here", "hashtags": ["tag1", "tag2"]}

%s`, brandBlock(brand), cfg.Label, topic, cfg.MaxLength, brand.Tone, hashtagRule, DataOnlyDirective)
}

func buildHashtags(brand models.BrandProfile, topic string) string {
	return fmt.Sprintf(`Generate 15 trending hashtags for a %s brand post about "%s".

%s
Mix: 5 popular, 5 niche, 5 brand-specific. 15 hashtags total.
Write each hashtag without the leading #.

OUTPUT FORMAT: a bare JSON array of 15 strings:
["tag1", "tag2", "tag3"]

%s`, industryLabel(brand.Industry), topic, brandBlock(brand), DataOnlyDirective)
}

func buildIdeas(brand models.BrandProfile, platform models.Platform, topic string) string {
	focus := ""
	if topic != "" {
		focus = fmt.Sprintf("Focus: %s\n", topic)
	}

	return fmt.Sprintf(`Generate 5 structured content ideas for %s on %s.
%s%s
OUTPUT FORMAT: a JSON array of exactly 5 objects, each with "title", "description" and "type" (Educational, Viral or Promo):
[{"title": "...", "description": "...", "type": "Educational"}]

%s`, brand.Name, platformConfig(platform).Label, brandBlock(brand), focus, DataOnlyDirective)
}

func buildCalendar(brand models.BrandProfile, platforms []models.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	platformList := strings.Join(names, ",")

	return fmt.Sprintf(`Create a 7-day content calendar for %s.
%s
For each day from Monday through Sunday, pick one platform from (%s), a content idea, and the best posting time.
Use only the listed platforms.

OUTPUT FORMAT: a JSON array of up to 7 objects, one per day, each with "day", "platform", "idea" and "time":
[{"day": "Monday", "platform": "%s", "idea": "...", "time": "9:00 AM"}]

%s`, brand.Name, brandBlock(brand), platformList, firstOr(names, string(models.DefaultPlatform)), DataOnlyDirective)
}

func platformConfig(p models.Platform) models.PlatformConfig {
	if cfg, ok := models.PlatformInfo(p); ok {
		return cfg
	}
	cfg, _ := models.PlatformInfo(models.DefaultPlatform)
	return cfg
}

func industryLabel(i models.Industry) string {
	if cfg, ok := models.IndustryInfo(i); ok {
		return cfg.Label
	}
	return string(i)
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
