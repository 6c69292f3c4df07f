package models

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
)

type PlatformConfig struct {
	ID        Platform `json:"id"`
	Label     string   `json:"label"`
	Icon      string   `json:"icon"`
	MaxLength int      `json:"max_length"`
}

var platformCatalog = []PlatformConfig{
	{ID: PlatformInstagram, Label: "Instagram", Icon: "📸", MaxLength: 2200},
	{ID: PlatformTikTok, Label: "TikTok", Icon: "🎵", MaxLength: 150},
	{ID: PlatformLinkedIn, Label: "LinkedIn", Icon: "💼", MaxLength: 3000},
	{ID: PlatformTwitter, Label: "Twitter/X", Icon: "🐦", MaxLength: 280},
}

// AllPlatforms returns the supported platforms in display order.
func AllPlatforms() []PlatformConfig {
	out := make([]PlatformConfig, len(platformCatalog))
	copy(out, platformCatalog)
	return out
}

// PlatformInfo looks up the display config for p.
func PlatformInfo(p Platform) (PlatformConfig, bool) {
	for _, cfg := range platformCatalog {
		if cfg.ID == p {
			return cfg, true
		}
	}
	return PlatformConfig{}, false
}

func ValidPlatform(p Platform) bool {
	_, ok := PlatformInfo(p)
	return ok
}

type Industry string

const (
	IndustryBeauty    Industry = "beauty"
	IndustryFashion   Industry = "fashion"
	IndustryLuxury    Industry = "luxury"
	IndustryLifestyle Industry = "lifestyle"
)

type IndustryConfig struct {
	ID       Industry `json:"id"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Keywords []string `json:"keywords"`
}

var industryCatalog = []IndustryConfig{
	{
		ID: IndustryBeauty, Label: "Beauty & Skincare", Icon: "💄",
		Keywords: []string{"glow", "radiant", "flawless", "self-care", "natural", "beauty routine", "skincare secrets"},
	},
	{
		ID: IndustryFashion, Label: "Fashion & Style", Icon: "👗",
		Keywords: []string{"chic", "effortless", "timeless", "statement piece", "elevate", "style", "trend"},
	},
	{
		ID: IndustryLuxury, Label: "Luxury & Premium", Icon: "✨",
		Keywords: []string{"exclusive", "exquisite", "craftsmanship", "heritage", "bespoke", "refined", "prestigious"},
	},
	{
		ID: IndustryLifestyle, Label: "Lifestyle & Wellness", Icon: "🌿",
		Keywords: []string{"mindful", "balance", "authentic", "curated", "elevated living", "wellness journey"},
	},
}

func AllIndustries() []IndustryConfig {
	out := make([]IndustryConfig, len(industryCatalog))
	copy(out, industryCatalog)
	return out
}

func IndustryInfo(i Industry) (IndustryConfig, bool) {
	for _, cfg := range industryCatalog {
		if cfg.ID == i {
			return cfg, true
		}
	}
	return IndustryConfig{}, false
}

type Tone string

const (
	TonePlayful        Tone = "playful"
	ToneSophisticated  Tone = "sophisticated"
	ToneEmpowering     Tone = "empowering"
	ToneEducational    Tone = "educational"
	ToneConversational Tone = "conversational"
	ToneLuxurious      Tone = "luxurious"
)

type ToneOption struct {
	Value       Tone   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var toneCatalog = []ToneOption{
	{Value: TonePlayful, Label: "Playful & Fun", Description: "Light-hearted, emoji-friendly"},
	{Value: ToneSophisticated, Label: "Sophisticated", Description: "Elegant, refined language"},
	{Value: ToneEmpowering, Label: "Empowering", Description: "Motivational, inspiring"},
	{Value: ToneEducational, Label: "Educational", Description: "Informative, expert tone"},
	{Value: ToneConversational, Label: "Conversational", Description: "Friendly, relatable"},
	{Value: ToneLuxurious, Label: "Luxurious", Description: "Premium, aspirational"},
}

func AllTones() []ToneOption {
	out := make([]ToneOption, len(toneCatalog))
	copy(out, toneCatalog)
	return out
}

func ToneInfo(t Tone) (ToneOption, bool) {
	for _, opt := range toneCatalog {
		if opt.Value == t {
			return opt, true
		}
	}
	return ToneOption{}, false
}
