// Package studio holds the brand profile and the library of saved content.
// A Studio is an explicit container: it starts from a defined State, is
// mutated only through its methods, and is persisted through a Snapshotter
// at process start and end.
package studio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("content not found")

type State struct {
	Brand    models.BrandProfile    `json:"brand"`
	Contents []models.StoredContent `json:"contents"`
}

// Filter narrows Contents; zero fields match everything.
type Filter struct {
	Platform models.Platform
	Status   models.ContentStatus
}

type Studio struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

type Option func(*Studio)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

func New(initial State, opts ...Option) *Studio {
	s := &Studio{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.state = cloneState(initial)
	if s.state.Contents == nil {
		s.state.Contents = []models.StoredContent{}
	}
	return s
}

// InitialState is what a brand-new studio starts with: the demo brand and
// two sample drafts.
func InitialState(now time.Time) State {
	brand := models.DefaultBrand(now)

	post := models.NewStoredContent(brand, models.PlatformInstagram, models.ContentFullPost,
		"✨ Your skin deserves a moment of luxury every day. Our new Radiance Serum combines science-backed actives with pure botanical extracts for that lit-from-within glow.\n\nPro tip: Apply on damp skin for maximum absorption 💫\n\nReady to transform your routine? Link in bio.",
		[]string{"skincare", "glowingskin", "luxuryskincare", "radiantskin", "selfcare", "beautyroutine", "skincareobsessed"}, now)
	post.ID = "content-1"
	post.EngagementTips = []string{"Post between 6-9 PM", "Respond to comments within 1 hour", "Add poll sticker to stories"}

	clip := models.NewStoredContent(brand, models.PlatformTikTok, models.ContentCaption,
		"POV: Your skincare finally starts working 🪄✨ #GlowUp",
		[]string{"skincaretiktok", "glowup", "beautytips", "skincareroutine"}, now.Add(-time.Hour))
	clip.ID = "content-2"
	clip.Tone = models.TonePlayful
	clip.EngagementTips = []string{"Use trending sound", "Post at peak hours", "Engage with duets"}

	return State{Brand: brand, Contents: []models.StoredContent{post, clip}}
}

func (s *Studio) Brand() models.BrandProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBrand(s.state.Brand)
}

// SetBrand replaces the profile, keeping its creation time.
func (s *Studio) SetBrand(b models.BrandProfile) (models.BrandProfile, error) {
	if err := b.Validate(); err != nil {
		return models.BrandProfile{}, fmt.Errorf("invalid brand: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = s.state.Brand.ID
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.state.Brand.CreatedAt
	}
	b.UpdatedAt = s.now()
	s.state.Brand = cloneBrand(b)
	return cloneBrand(b), nil
}

func (s *Studio) UpdateBrand(u models.BrandUpdate) (models.BrandProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Brand.Apply(u)
	if err := next.Validate(); err != nil {
		return models.BrandProfile{}, fmt.Errorf("invalid brand: %w", err)
	}
	next.UpdatedAt = s.now()
	s.state.Brand = cloneBrand(next)
	return cloneBrand(next), nil
}

// AddContent stores c at the front of the library. Missing id, brand, tone,
// status and creation time are filled in.
func (s *Studio) AddContent(c models.StoredContent) (models.StoredContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.BrandID == "" {
		c.BrandID = s.state.Brand.ID
	}
	if c.Tone == "" {
		c.Tone = s.state.Brand.Tone
	}
	if c.Status == "" {
		c.Status = models.StatusDraft
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if c.Hashtags == nil {
		c.Hashtags = []string{}
	}
	if c.EngagementTips == nil {
		c.EngagementTips = []string{}
	}
	if err := c.Validate(); err != nil {
		return models.StoredContent{}, fmt.Errorf("invalid content: %w", err)
	}
	for _, existing := range s.state.Contents {
		if existing.ID == c.ID {
			return models.StoredContent{}, fmt.Errorf("content %s already exists", c.ID)
		}
	}

	s.state.Contents = append([]models.StoredContent{cloneContent(c)}, s.state.Contents...)
	return cloneContent(c), nil
}

func (s *Studio) Content(id string) (models.StoredContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.StoredContent{}, ErrNotFound
	}
	return cloneContent(s.state.Contents[i]), nil
}

func (s *Studio) UpdateContent(id string, u models.ContentUpdate) (models.StoredContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.StoredContent{}, ErrNotFound
	}
	next := s.state.Contents[i].Apply(u)
	if err := next.Validate(); err != nil {
		return models.StoredContent{}, fmt.Errorf("invalid content: %w", err)
	}
	s.state.Contents[i] = next
	return cloneContent(next), nil
}

func (s *Studio) DeleteContent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.state.Contents = append(s.state.Contents[:i], s.state.Contents[i+1:]...)
	return nil
}

// Contents lists saved content, newest first.
func (s *Studio) Contents(f Filter) []models.StoredContent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.StoredContent{}
	for _, c := range s.state.Contents {
		if f.Platform != "" && c.Platform != f.Platform {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, cloneContent(c))
	}
	return out
}

// Stats counts saved content per platform, including empty platforms.
func (s *Studio) Stats() map[models.Platform]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Platform]int)
	for _, p := range models.AllPlatforms() {
		counts[p.ID] = 0
	}
	for _, c := range s.state.Contents {
		counts[c.Platform]++
	}
	return counts
}

func (s *Studio) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

func (s *Studio) indexOf(id string) int {
	for i, c := range s.state.Contents {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneState(st State) State {
	out := State{Brand: cloneBrand(st.Brand)}
	if st.Contents != nil {
		out.Contents = make([]models.StoredContent, len(st.Contents))
		for i, c := range st.Contents {
			out.Contents[i] = cloneContent(c)
		}
	}
	return out
}

func cloneBrand(b models.BrandProfile) models.BrandProfile {
	b.Keywords = append([]string(nil), b.Keywords...)
	return b
}

func cloneContent(c models.StoredContent) models.StoredContent {
	c.Hashtags = append([]string{}, c.Hashtags...)
	c.EngagementTips = append([]string{}, c.EngagementTips...)
	if c.ScheduledAt != nil {
		at := *c.ScheduledAt
		c.ScheduledAt = &at
	}
	return c
}
