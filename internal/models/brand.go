package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type BrandColors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
}

// BrandProfile describes the voice and identity used to personalise
// generated text. Industry and Tone must be catalog members; everything
// else is free text.
type BrandProfile struct {
	ID               string      `json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	Industry         Industry    `json:"industry" yaml:"industry" validate:"oneof=beauty fashion luxury lifestyle"`
	VoiceDescription string      `json:"voice_description" yaml:"voice_description"`
	Tone             Tone        `json:"tone" yaml:"tone" validate:"oneof=playful sophisticated empowering educational conversational luxurious"`
	TargetAudience   string      `json:"target_audience" yaml:"target_audience"`
	Keywords         []string    `json:"keywords" yaml:"keywords"`
	Colors           BrandColors `json:"colors" yaml:"colors"`
	CreatedAt        time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" yaml:"updated_at"`
}

// BrandUpdate carries a partial edit; nil fields are left untouched.
type BrandUpdate struct {
	Name             *string      `json:"name,omitempty"`
	Industry         *Industry    `json:"industry,omitempty"`
	VoiceDescription *string      `json:"voice_description,omitempty"`
	Tone             *Tone        `json:"tone,omitempty"`
	TargetAudience   *string      `json:"target_audience,omitempty"`
	Keywords         []string     `json:"keywords,omitempty"`
	Colors           *BrandColors `json:"colors,omitempty"`
}

var validate = validator.New()

// Validate checks the enumerated fields of the profile.
func (b BrandProfile) Validate() error {
	return validate.Struct(b)
}

// Apply returns a copy of b with the update merged in.
func (b BrandProfile) Apply(u BrandUpdate) BrandProfile {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Industry != nil {
		b.Industry = *u.Industry
	}
	if u.VoiceDescription != nil {
		b.VoiceDescription = *u.VoiceDescription
	}
	if u.Tone != nil {
		b.Tone = *u.Tone
	}
	if u.TargetAudience != nil {
		b.TargetAudience = *u.TargetAudience
	}
	if u.Keywords != nil {
		b.Keywords = append([]string(nil), u.Keywords...)
	}
	if u.Colors != nil {
		b.Colors = *u.Colors
	}
	return b
}

// DefaultBrand is the demo profile a fresh studio starts with.
func DefaultBrand(now time.Time) BrandProfile {
	return BrandProfile{
		ID:               "brand-1",
		Name:             "Glow Beauty",
		Industry:         IndustryBeauty,
		VoiceDescription: "We speak to modern women who value both efficacy and indulgence in their skincare routine. Our voice is confident, knowledgeable, and warmly encouraging.",
		Tone:             ToneSophisticated,
		TargetAudience:   "Women aged 25-45 who invest in premium skincare and value science-backed results with a touch of luxury",
		Keywords:         []string{"radiant skin", "luxury skincare", "self-care ritual", "glowing complexion", "beauty science"},
		Colors: BrandColors{
			Primary:   "#F5E6E0",
			Secondary: "#C9A698",
			Accent:    "#8B5A5A",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
