package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobber-ats/core/internal/platform/logger"
	redisClient "github.com/jobber-ats/core/internal/platform/redis"
	auditModel "github.com/jobber-ats/core/modules/audit/model"
	"github.com/jobber-ats/core/modules/dashboard/model"
	"github.com/jobber-ats/core/modules/dashboard/ports"
	"go.uber.org/zap"
)

const (
	overviewCacheKey    = "dashboard:overview"
	overviewCacheTTL    = 30 * time.Second
	recentChangesWindow = 24 * time.Hour
	topCandidatesLimit  = 10
)

// DashboardService composes the read-only aggregates each owning module
// already exposes into one projection, cached in Redis behind a short
// TTL since every field here is expensive relative to how often it
// actually changes.
type DashboardService struct {
	repo       ports.DashboardRepository
	interviews ports.InterviewLookup
	audit      ports.AuditLookup
	cache      *redisClient.Client
	log        *logger.Logger
}

func NewDashboardService(
	repo ports.DashboardRepository,
	interviews ports.InterviewLookup,
	audit ports.AuditLookup,
	cache *redisClient.Client,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{repo: repo, interviews: interviews, audit: audit, cache: cache, log: log}
}

// Overview returns the composite dashboard projection, serving a cached
// copy when one is fresh. A cache miss or a Redis error both fall
// through to a live rebuild; Redis is an accelerator here, never a
// dependency the dashboard can fail on.
func (s *DashboardService) Overview(ctx context.Context) (*model.Overview, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	overview, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, overview)
	return overview, nil
}

func (s *DashboardService) build(ctx context.Context) (*model.Overview, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	total, err := s.repo.TotalCandidates(ctx)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.repo.CandidatesCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	byStage, err := s.repo.CandidatesByStage(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopCandidatesByScore(ctx, topCandidatesLimit)
	if err != nil {
		return nil, err
	}
	avgByStage, err := s.repo.AverageScoreByStage(ctx)
	if err != nil {
		return nil, err
	}
	hired, err := s.repo.HiredCount(ctx)
	if err != nil {
		return nil, err
	}

	scheduledToday, err := s.interviews.ScheduledToday(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	completedNoFeedback, err := s.interviews.CompletedWithoutFeedback(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.audit.RecentStageChangesSince(ctx, now.Add(-recentChangesWindow))
	if err != nil {
		return nil, err
	}
	recentChanges := make([]auditModel.StageChange, 0, len(recent))
	for _, c := range recent {
		recentChanges = append(recentChanges, *c)
	}

	conversion := 0.0
	if total > 0 {
		conversion = float64(hired) / float64(total)
	}

	return &model.Overview{
		TotalCandidates:          total,
		CandidatesThisMonth:      thisMonth,
		InterviewsScheduledToday: len(scheduledToday),
		CompletedWithoutFeedback: len(completedNoFeedback),
		CandidatesByStage:        byStage,
		RecentStageChanges:       recentChanges,
		TopCandidates:            top,
		AverageScoreByStage:      avgByStage,
		Funnel: model.Funnel{
			Stages:            byStage,
			TotalCandidates:   total,
			Hired:             hired,
			OverallConversion: conversion,
		},
	}, nil
}

func (s *DashboardService) readCache(ctx context.Context) (*model.Overview, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, overviewCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var overview model.Overview
	if err := json.Unmarshal(raw, &overview); err != nil {
		return nil, false
	}
	return &overview, true
}

func (s *DashboardService) writeCache(ctx context.Context, overview *model.Overview) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(overview)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, overviewCacheKey, raw, overviewCacheTTL).Err(); err != nil {
		s.log.WithAction("dashboard-overview").Warn("failed to populate dashboard cache", zap.Error(err))
	}
}
