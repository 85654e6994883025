package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	campaignserrors "utmforge/internal/campaigns/errors"
	"utmforge/internal/campaigns/events"
	"utmforge/internal/campaigns/repository"
	"utmforge/internal/campaigns/validator"
	"utmforge/internal/extraction"
	"utmforge/pkg/config"
	apperrors "utmforge/pkg/errors"
	"utmforge/pkg/model"
	"utmforge/pkg/utm"
)

// Extractor turns a free-text campaign description into a structured record.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (*model.CampaignRecord, error)
}

// ReachabilityChecker probes whether a URL answers with a success status.
type ReachabilityChecker interface {
	IsReachable(url string) bool
}

// BuildResult is the outcome of a single build: the persisted link plus
// canonical-form suggestions for every field that produced lint warnings.
type BuildResult struct {
	Link        *model.CampaignLink `json:"link"`
	Suggestions map[string]string   `json:"suggestions,omitempty"`
}

type CampaignService interface {
	Generate(ctx context.Context, prompt, label string, probe bool) (*BuildResult, error)
	Build(ctx context.Context, rec *model.CampaignRecord, label string, probe bool) (*BuildResult, error)
	History(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, int64, error)
	DeleteLink(ctx context.Context, id string) error
}

type campaignService struct {
	repo      repository.LinkRepository
	validator *validator.CampaignValidator
	extractor Extractor
	checker   ReachabilityChecker
	publisher events.Publisher
	cfg       *config.Config
}

func NewCampaignService(
	repo repository.LinkRepository,
	validator *validator.CampaignValidator,
	extractor Extractor,
	checker ReachabilityChecker,
	publisher events.Publisher,
	cfg *config.Config,
) CampaignService {
	return &campaignService{
		repo:      repo,
		validator: validator,
		extractor: extractor,
		checker:   checker,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Generate runs the full pipeline: extraction, schema validation, lint,
// build, optional reachability probe, history persistence, event publish.
func (s *campaignService) Generate(ctx context.Context, prompt, label string, probe bool) (*BuildResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperrors.InvalidInput("Campaign description cannot be empty")
	}

	rec, err := s.extractor.Extract(ctx, prompt)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrSchemaViolation):
			s.cfg.Log.Warn("Extraction returned malformed record", "error", err)
			return nil, apperrors.Validation("Extraction response is missing required campaign fields", map[string]any{
				"error": err.Error(),
			})
		case errors.Is(err, extraction.ErrMissingAPIKey):
			return nil, apperrors.InvalidInput("Extraction API key is not configured")
		default:
			s.cfg.Log.Error("Extraction call failed", "error", err)
			return nil, apperrors.Unavailable("Campaign extraction")
		}
	}

	return s.build(ctx, rec, label, probe, events.EventCampaignGenerated)
}

// Build is the editing path: rebuild the URL from a user-edited record
// without going through the extraction service.
func (s *campaignService) Build(ctx context.Context, rec *model.CampaignRecord, label string, probe bool) (*BuildResult, error) {
	if rec == nil {
		return nil, apperrors.InvalidInput("Campaign record cannot be empty")
	}
	return s.build(ctx, rec, label, probe, events.EventCampaignBuilt)
}

func (s *campaignService) build(ctx context.Context, rec *model.CampaignRecord, label string, probe bool, eventType string) (*BuildResult, error) {
	if err := s.validator.Validate(rec); err != nil {
		s.cfg.Log.Warn("Campaign record validation failed",
			"website_url", rec.WebsiteURL,
			"error", err,
		)
		return nil, apperrors.Validation("Campaign record validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	warnings, suggestions := lintRecord(rec)

	link := &model.CampaignLink{
		Label:    label,
		Record:   *rec,
		FinalURL: utm.Build(rec.WebsiteURL, *rec),
		Warnings: warnings,
		Notices:  s.validator.Advisories(rec),
	}

	if probe {
		reachable := s.checker.IsReachable(link.FinalURL)
		link.Reachable = &reachable
	}

	if err := s.repo.Create(ctx, link); err != nil {
		s.cfg.Log.Error("Failed to persist campaign link",
			"final_url", link.FinalURL,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to save campaign link", err)
	}

	if err := s.publisher.PublishCampaignEvent(ctx, eventType, link); err != nil {
		// Event delivery is advisory; the link is already saved.
		s.cfg.Log.Error("Failed to publish campaign event",
			"event_type", eventType,
			"link_id", link.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Campaign link built",
		"link_id", link.ID,
		"final_url", link.FinalURL,
		"warning_fields", len(warnings),
	)

	return &BuildResult{Link: link, Suggestions: suggestions}, nil
}

// lintRecord lints every UTM-bound field and collects canonical-form
// suggestions for the ones that warned.
func lintRecord(rec *model.CampaignRecord) (model.FieldWarnings, map[string]string) {
	fields := []struct {
		name  string
		value string
	}{
		{"source", rec.Source},
		{"medium", rec.Medium},
		{"name", rec.Name},
		{"id", rec.ID},
		{"term", rec.Term},
		{"content", rec.Content},
	}

	warnings := model.FieldWarnings{}
	suggestions := map[string]string{}

	for _, f := range fields {
		found := utm.Lint(f.value)
		if len(found) == 0 {
			continue
		}

		names := make([]string, 0, len(found))
		for _, w := range found {
			names = append(names, w.String())
		}
		warnings[f.name] = names

		if canonical := utm.Canonicalize(f.value); canonical != "" && canonical != f.value {
			suggestions[f.name] = canonical
		}
	}

	if len(warnings) == 0 {
		return nil, nil
	}
	return warnings, suggestions
}

func (s *campaignService) History(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var links []*model.CampaignLink
	var errCount, errFind error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count campaign links", "error", err)
			errCount = apperrors.Internal("Failed to count campaign links", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		links, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list campaign links",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to list campaign links", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return links, count, nil
}

func (s *campaignService) DeleteLink(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Campaign link ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, campaignserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Campaign link", id)
		}
		if errors.Is(err, campaignserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid campaign link ID format")
		}
		s.cfg.Log.Error("Failed to delete campaign link", "id", id, "error", err)
		return apperrors.Internal("Failed to delete campaign link", err)
	}

	return nil
}
