package models

type Action string

const (
	ActionCaption  Action = "caption"
	ActionHashtags Action = "hashtags"
	ActionIdeas    Action = "ideas"
	ActionCalendar Action = "calendar"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCaption, ActionHashtags, ActionIdeas, ActionCalendar:
		return true
	}
	return false
}

// RequiresTopic reports whether the action needs a non-empty topic.
func (a Action) RequiresTopic() bool {
	return a == ActionCaption || a == ActionHashtags
}

// Defaults applied when a request leaves them out.
var (
	DefaultPlatform          = PlatformInstagram
	DefaultCalendarPlatforms = []Platform{PlatformInstagram, PlatformTwitter, PlatformLinkedIn}
)

type GenerationRequest struct {
	Action          Action        `json:"action"`
	Brand           *BrandProfile `json:"brand,omitempty"`
	Platform        Platform      `json:"platform,omitempty"`
	Topic           string        `json:"topic,omitempty"`
	Platforms       []Platform    `json:"platforms,omitempty"`
	IncludeHashtags *bool         `json:"include_hashtags,omitempty"`
}

type CaptionResult struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

type ContentIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type CalendarEntry struct {
	Day      string   `json:"day"`
	Platform Platform `json:"platform"`
	Idea     string   `json:"idea"`
	Time     string   `json:"time"`
}

// Weekdays is the order a calendar is expected to cover.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
