package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/pkg/events"
	"servic/internal/repository"
)

type Service struct {
	leads     LeadRepository
	providers ProviderReader
	events    events.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(leads LeadRepository, providers ProviderReader, publisher events.Publisher, log logrus.FieldLogger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{leads: leads, providers: providers, events: publisher, log: log, now: time.Now}
}

// RecordLead stores a contact click for a provider.
func (s *Service) RecordLead(ctx context.Context, providerID int64, leadType string) (*domain.Lead, error) {
	t := domain.LeadType(strings.ToLower(strings.TrimSpace(leadType)))
	if providerID <= 0 || t == "" {
		return nil, ErrMissingFields
	}
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	ok, err := s.providers.Exists(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("check provider %d: %w", providerID, err)
	}
	if !ok {
		return nil, ErrProviderNotFound
	}

	l := &domain.Lead{ProviderID: providerID, Type: t, Timestamp: s.now().UTC()}
	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, events.LeadRecorded, l); err != nil {
		s.log.WithError(err).WithField("provider_id", providerID).Warn("publish lead.recorded")
	}
	return l, nil
}

// StatsForOwner counts the leads of the provider profile the actor owns.
func (s *Service) StatsForOwner(ctx context.Context, actor domain.Actor) (domain.LeadStats, error) {
	p, err := s.providers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.LeadStats{}, ErrNoProfile
		}
		return domain.LeadStats{}, fmt.Errorf("load provider of user %d: %w", actor.UserID, err)
	}
	return s.leads.CountByType(ctx, p.ID)
}
