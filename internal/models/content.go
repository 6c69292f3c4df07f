package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentCaption            ContentType = "caption"
	ContentHashtags           ContentType = "hashtags"
	ContentProductDescription ContentType = "product_description"
	ContentStoryIdea          ContentType = "story_idea"
	ContentFullPost           ContentType = "full_post"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusScheduled ContentStatus = "scheduled"
	StatusPublished ContentStatus = "published"
)

// StoredContent is a generation result the user chose to keep.
type StoredContent struct {
	ID             string        `json:"id"`
	BrandID        string        `json:"brand_id"`
	Platform       Platform      `json:"platform" validate:"oneof=instagram tiktok linkedin twitter"`
	ContentType    ContentType   `json:"content_type" validate:"oneof=caption hashtags product_description story_idea full_post"`
	Text           string        `json:"text"`
	Hashtags       []string      `json:"hashtags"`
	Tone           Tone          `json:"tone"`
	EngagementTips []string      `json:"engagement_tips"`
	ScheduledAt    *time.Time    `json:"scheduled_at"`
	Status         ContentStatus `json:"status" validate:"oneof=draft scheduled published"`
	CreatedAt      time.Time     `json:"created_at"`
}

type ContentUpdate struct {
	Platform       *Platform      `json:"platform,omitempty"`
	ContentType    *ContentType   `json:"content_type,omitempty"`
	Text           *string        `json:"text,omitempty"`
	Hashtags       []string       `json:"hashtags,omitempty"`
	Tone           *Tone          `json:"tone,omitempty"`
	EngagementTips []string       `json:"engagement_tips,omitempty"`
	ScheduledAt    *time.Time     `json:"scheduled_at,omitempty"`
	Status         *ContentStatus `json:"status,omitempty"`
}

// NewStoredContent builds a draft for brand with a fresh id.
func NewStoredContent(brand BrandProfile, platform Platform, kind ContentType, text string, hashtags []string, now time.Time) StoredContent {
	return StoredContent{
		ID:             uuid.New().String(),
		BrandID:        brand.ID,
		Platform:       platform,
		ContentType:    kind,
		Text:           text,
		Hashtags:       append([]string{}, hashtags...),
		Tone:           brand.Tone,
		EngagementTips: []string{},
		Status:         StatusDraft,
		CreatedAt:      now,
	}
}

func (c StoredContent) Validate() error {
	return validate.Struct(c)
}

func (c StoredContent) Apply(u ContentUpdate) StoredContent {
	if u.Platform != nil {
		c.Platform = *u.Platform
	}
	if u.ContentType != nil {
		c.ContentType = *u.ContentType
	}
	if u.Text != nil {
		c.Text = *u.Text
	}
	if u.Hashtags != nil {
		c.Hashtags = append([]string(nil), u.Hashtags...)
	}
	if u.Tone != nil {
		c.Tone = *u.Tone
	}
	if u.EngagementTips != nil {
		c.EngagementTips = append([]string(nil), u.EngagementTips...)
	}
	if u.ScheduledAt != nil {
		at := *u.ScheduledAt
		c.ScheduledAt = &at
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	return c
}

// ShareText renders the body followed by its hashtags, ready to paste.
func (c StoredContent) ShareText() string {
	if len(c.Hashtags) == 0 {
		return c.Text
	}
	tags := make([]string, 0, len(c.Hashtags))
	for _, h := range c.Hashtags {
		tags = append(tags, "#"+strings.TrimPrefix(h, "#"))
	}
	return c.Text + "\n\n" + strings.Join(tags, " ")
}
