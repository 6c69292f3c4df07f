// Package dispatch routes a generation request through prompt building,
// the generation call and response normalization.
//
// Each request moves received → validated → prompt-built → generated →
// normalized → delivered, or ends early as rejected (bad input, no upstream
// call made) or failed (upstream or format error). Nothing is retried and
// no state is shared between requests.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-studio/internal/generator"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/BerylCAtieno/content-studio/internal/normalize"
	"github.com/BerylCAtieno/content-studio/internal/prompt"
	"go.uber.org/zap"
)

type Result struct {
	Action   models.Action `json:"action"`
	Data     any           `json:"data"`
	Warnings []string      `json:"warnings,omitempty"`
}

type Dispatcher struct {
	gen    generator.Generator
	logger *zap.Logger
	strict bool
}

type Option func(*Dispatcher)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithStrict turns semantic drift into a SemanticError instead of warnings.
func WithStrict(strict bool) Option {
	return func(d *Dispatcher) { d.strict = strict }
}

func New(gen generator.Generator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		gen:    gen,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// plan is a validated request with defaults filled in.
type plan struct {
	action    models.Action
	brand     models.BrandProfile
	platform  models.Platform
	topic     string
	platforms []models.Platform
	hashtags  bool
}

// Handle runs one request to completion. Errors are *ValidationError,
// *GenerationError, *normalize.FormatError or, in strict mode,
// *SemanticError.
func (d *Dispatcher) Handle(ctx context.Context, req models.GenerationRequest) (*Result, error) {
	log := d.logger.With(zap.String("action", string(req.Action)))
	log.Debug("request received", zap.String("topic", req.Topic))

	p, err := validate(req)
	if err != nil {
		log.Info("request rejected", zap.Error(err))
		return nil, err
	}
	log.Debug("request validated", zap.String("platform", string(p.platform)))

	text, err := prompt.Build(p.action, p.brand, p.platform, p.topic, prompt.Extra{
		Platforms:       p.platforms,
		IncludeHashtags: p.hashtags,
	})
	if err != nil {
		log.Error("prompt build failed", zap.Error(err))
		return nil, fmt.Errorf("build prompt: %w", err)
	}
	log.Debug("prompt built", zap.Int("prompt_length", len(text)))

	raw, err := d.gen.Generate(ctx, text)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, &GenerationError{Err: err}
	}
	log.Debug("response generated", zap.Int("response_length", len(raw)))

	data, err := normalize.Normalize(raw, p.action)
	if err != nil {
		var fe *normalize.FormatError
		if errors.As(err, &fe) {
			log.Warn("response not parseable", zap.Error(err), zap.String("raw", fe.Raw))
		}
		return nil, err
	}

	issues := normalize.Inspect(p.action, data, normalize.Expectations{
		Platform:  p.platform,
		Platforms: p.platforms,
	})
	if len(issues) > 0 {
		if d.strict {
			log.Warn("response rejected in strict mode", zap.Strings("issues", issues))
			return nil, &SemanticError{Issues: issues}
		}
		log.Debug("response drifted from request", zap.Strings("issues", issues))
	}

	log.Info("request delivered")
	return &Result{Action: p.action, Data: data, Warnings: issues}, nil
}

func validate(req models.GenerationRequest) (plan, error) {
	if !req.Action.Valid() {
		return plan{}, &ValidationError{Err: ErrInvalidAction}
	}

	topic := strings.TrimSpace(req.Topic)
	if req.Action.RequiresTopic() && topic == "" {
		return plan{}, &ValidationError{Err: fmt.Errorf("%w for %s", ErrTopicRequired, req.Action)}
	}

	if req.Brand == nil {
		return plan{}, &ValidationError{Err: errors.New("brand is required")}
	}
	if err := req.Brand.Validate(); err != nil {
		return plan{}, &ValidationError{Err: fmt.Errorf("invalid brand: %w", err)}
	}

	platform := req.Platform
	if platform == "" {
		platform = models.DefaultPlatform
	}
	if !models.ValidPlatform(platform) {
		return plan{}, &ValidationError{Err: fmt.Errorf("unsupported platform %q", platform)}
	}

	var platforms []models.Platform
	if req.Action == models.ActionCalendar {
		platforms = req.Platforms
		if len(platforms) == 0 {
			platforms = models.DefaultCalendarPlatforms
		}
		for _, p := range platforms {
			if !models.ValidPlatform(p) {
				return plan{}, &ValidationError{Err: fmt.Errorf("unsupported platform %q", p)}
			}
		}
	}

	hashtags := true
	if req.IncludeHashtags != nil {
		hashtags = *req.IncludeHashtags
	}

	return plan{
		action:    req.Action,
		brand:     *req.Brand,
		platform:  platform,
		topic:     topic,
		platforms: platforms,
		hashtags:  hashtags,
	}, nil
}
