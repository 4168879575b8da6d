package admin

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/modules/notification"
	"servic/internal/repository"
)

const EventProviderVerification = "provider.verification"

type Service struct {
	providers ProviderModerator
	stats     StatsReader
	pusher    Pusher
	log       logrus.FieldLogger
}

func NewService(providers ProviderModerator, stats StatsReader, pusher Pusher, log logrus.FieldLogger) *Service {
	return &Service{providers: providers, stats: stats, pusher: pusher, log: log}
}

// PendingProviders pages through profiles without the verified badge.
func (s *Service) PendingProviders(ctx context.Context, page, limit int) (*ProviderListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, total, err := s.providers.ListUnverified(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &ProviderListResponse{Providers: list, Total: total, Page: page, Limit: limit}, nil
}

// SetVerified grants or revokes the verified badge and tells the owner if they are online.
func (s *Service) SetVerified(ctx context.Context, adminID, providerID int64, verified bool) (*domain.Provider, error) {
	if providerID <= 0 {
		return nil, ErrInvalidID
	}
	if err := s.providers.SetVerified(ctx, providerID, verified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"admin_id":    adminID,
		"provider_id": providerID,
		"verified":    verified,
	}).Info("provider verification changed")

	if p.UserID != nil && s.pusher != nil {
		s.pusher.Push(*p.UserID, notification.NewEvent(EventProviderVerification,
			VerificationEvent{ProviderID: p.ID, IsVerified: verified}))
	}
	return p, nil
}

func (s *Service) Stats(ctx context.Context) (domain.PlatformStats, error) {
	return s.stats.PlatformStats(ctx)
}
