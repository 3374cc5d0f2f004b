package service

import (
	"context"
	"fmt"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/errors"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/entity"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ParticipantChecker interface {
	IsConfirmed(ctx context.Context, eventID, userID uuid.UUID) (bool, *errors.AppError)
}

// Cache stores baseline results between requests.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Recommender ranks candidates with the external AI service.
type Recommender interface {
	Recommend(ctx context.Context, req *dto.AIRecommendationRequest) (*dto.AIRecommendationResponse, error)
}

type RecommendationServiceInterface interface {
	Baseline(ctx context.Context, eventID, userID uuid.UUID) (*dto.RecommendationResponse, *errors.AppError)
	GetRecommendations(ctx context.Context, eventID, userID uuid.UUID) (*dto.RecommendationResponse, *errors.AppError)
	Proxy(ctx context.Context, req *dto.AIRecommendationRequest) (*dto.AIRecommendationResponse, *errors.AppError)
}

type RecommendationService struct {
	repo         repository.RecommendationRepositoryInterface
	participants ParticipantChecker
	cache        Cache
	ai           Recommender
}

// NewRecommendationService builds the service. cache and ai are optional.
func NewRecommendationService(repo repository.RecommendationRepositoryInterface, participants ParticipantChecker, cache Cache, ai Recommender) *RecommendationService {
	return &RecommendationService{repo: repo, participants: participants, cache: cache, ai: ai}
}

func CacheKey(eventID, userID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisKeyRecommendation, eventID, userID)
}

// Baseline scores the event's candidates locally.
func (s *RecommendationService) Baseline(ctx context.Context, eventID, userID uuid.UUID) (*dto.RecommendationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.requireParticipant(ctx, eventID, userID); appErr != nil {
		return nil, appErr
	}

	key := CacheKey(eventID, userID)
	if s.cache != nil {
		var cached dto.RecommendationResponse
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warn("RecommendationService:Baseline:CacheGet", "key", key, "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	caller, candidates, appErr := s.load(ctx, eventID, userID)
	if appErr != nil {
		return nil, appErr
	}
	resp := baseline(eventID, caller, candidates)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, resp, constants.RecommendationTTL); err != nil {
			logger.Warn("RecommendationService:Baseline:CacheSet", "key", key, "error", err)
		}
	}
	return resp, nil
}

// GetRecommendations asks the AI service to rank the full candidate set and
// falls back to the baseline when it fails or returns nothing usable.
func (s *RecommendationService) GetRecommendations(ctx context.Context, eventID, userID uuid.UUID) (*dto.RecommendationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.requireParticipant(ctx, eventID, userID); appErr != nil {
		return nil, appErr
	}
	caller, candidates, appErr := s.load(ctx, eventID, userID)
	if appErr != nil {
		return nil, appErr
	}
	fallback := baseline(eventID, caller, candidates)
	if s.ai == nil || len(candidates) == 0 {
		return fallback, nil
	}

	req := &dto.AIRecommendationRequest{
		UserProfile: toAIProfile(caller),
		Candidates:  make([]dto.AIProfile, len(candidates)),
	}
	for i := range candidates {
		req.Candidates[i] = toAIProfile(&candidates[i])
	}

	ranked, err := s.ai.Recommend(ctx, req)
	if err != nil {
		logger.Warn("RecommendationService:GetRecommendations:AIFailed", "event_id", eventID, "error", err)
		return fallback, nil
	}
	items := merge(ranked.Recommendations, candidates)
	if len(items) == 0 {
		logger.Warn("RecommendationService:GetRecommendations:AIEmpty", "event_id", eventID)
		return fallback, nil
	}
	return &dto.RecommendationResponse{EventID: eventID, Source: dto.SourceAI, Items: items}, nil
}

// Proxy forwards a client supplied request to the AI service.
func (s *RecommendationService) Proxy(ctx context.Context, req *dto.AIRecommendationRequest) (*dto.AIRecommendationResponse, *errors.AppError) {
	if s.ai == nil {
		return nil, errors.NewAppError(errors.ErrUpstreamFailed, "AI service is not configured", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	resp, err := s.ai.Recommend(ctx, req)
	if err != nil {
		logger.Error("RecommendationService:Proxy:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamFailed, "AI service request failed", err)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []dto.AIRecommendation{}
	}
	return resp, nil
}

func (s *RecommendationService) requireParticipant(ctx context.Context, eventID, userID uuid.UUID) *errors.AppError {
	ok, appErr := s.participants.IsConfirmed(ctx, eventID, userID)
	if appErr != nil {
		return appErr
	}
	if !ok {
		return errors.NewAppError(errors.ErrForbidden, "Only event participants can get recommendations", nil)
	}
	return nil
}

func (s *RecommendationService) load(ctx context.Context, eventID, userID uuid.UUID) (*entity.Candidate, []entity.Candidate, *errors.AppError) {
	var (
		caller     *entity.Candidate
		candidates []entity.Candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caller, err = s.repo.GetCaller(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.repo.ListCandidates(gctx, eventID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load candidates", err)
	}
	if caller == nil {
		caller = &entity.Candidate{UserID: userID}
	}
	return caller, candidates, nil
}

func baseline(eventID uuid.UUID, caller *entity.Candidate, candidates []entity.Candidate) *dto.RecommendationResponse {
	return &dto.RecommendationResponse{
		EventID: eventID,
		Source:  dto.SourceBaseline,
		Items:   Rank(caller, candidates, constants.RecommendationSize),
	}
}

// merge keeps the AI order, dropping ids outside the candidate set and repeats.
func merge(ranked []dto.AIRecommendation, candidates []entity.Candidate) []dto.RecommendationItem {
	byID := make(map[uuid.UUID]*entity.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].UserID] = &candidates[i]
	}
	items := []dto.RecommendationItem{}
	for _, r := range ranked {
		c, ok := byID[r.UserID]
		if !ok {
			continue
		}
		delete(byID, r.UserID)
		items = append(items, toItem(c, r.Score, r.Reason))
		if len(items) == constants.RecommendationSize {
			break
		}
	}
	return items
}
