package service

import (
	"context"
	"time"

	"kw8/gym-app/internal/domain"
)

// MembershipService manages monthly membership cards, a remote-only
// collection. Listed cards carry their effective status.
type MembershipService interface {
	List(ctx context.Context) ([]domain.MembershipCard, error)
	ListByUser(ctx context.Context, userID string) ([]domain.MembershipCard, error)
	Get(ctx context.Context, id string) (*domain.MembershipCard, error)
	Create(ctx context.Context, card *domain.MembershipCard) (*domain.MembershipCard, error)
	Update(ctx context.Context, card *domain.MembershipCard) (*domain.MembershipCard, error)
	Delete(ctx context.Context, id string) error
}

type membershipService struct {
	backends *Backends
	now      func() time.Time
}

func NewMembershipService(backends *Backends) MembershipService {
	return &membershipService{backends: backends, now: func() time.Time { return time.Now().UTC() }}
}

func (s *membershipService) effective(cards []domain.MembershipCard) []domain.MembershipCard {
	now := s.now()
	for i := range cards {
		cards[i].Status = cards[i].EffectiveStatus(now)
	}
	return cards
}

func (s *membershipService) List(ctx context.Context) ([]domain.MembershipCard, error) {
	if !s.backends.RemoteSelected(ctx) {
		return []domain.MembershipCard{}, nil
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := repos.Memberships.List(ctx)
	if err != nil {
		return nil, s.backends.observe(ctx, "memberships.list", true, err)
	}
	return s.effective(cards), nil
}

func (s *membershipService) ListByUser(ctx context.Context, userID string) ([]domain.MembershipCard, error) {
	if !s.backends.RemoteSelected(ctx) {
		return []domain.MembershipCard{}, nil
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := repos.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.backends.observe(ctx, "memberships.list_by_user", true, err)
	}
	return s.effective(cards), nil
}

func (s *membershipService) Get(ctx context.Context, id string) (*domain.MembershipCard, error) {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	card, err := repos.Memberships.GetByID(ctx, id)
	if err != nil {
		return nil, s.backends.observe(ctx, "memberships.get", true, err)
	}
	card.Status = card.EffectiveStatus(s.now())
	return card, nil
}

// validateCard checks the month and derives the year and a default expiry
// at the end of that month.
func validateCard(card *domain.MembershipCard) error {
	if card.UserID == "" {
		return validationError("card userId is required")
	}
	month, err := time.Parse("2006-01", card.Month)
	if err != nil {
		return validationError("month must be YYYY-MM, got %q", card.Month)
	}
	card.Year = month.Year()
	if card.ExpiryDate.IsZero() {
		card.ExpiryDate = month.AddDate(0, 1, 0).Add(-time.Second)
	}
	switch card.Status {
	case "":
		card.Status = domain.CardPending
	case domain.CardActive, domain.CardExpired, domain.CardPending:
	default:
		return validationError("unknown card status %q", card.Status)
	}
	return nil
}

func (s *membershipService) Create(ctx context.Context, card *domain.MembershipCard) (*domain.MembershipCard, error) {
	if err := validateCard(card); err != nil {
		return nil, err
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	_, err = repos.Memberships.Create(ctx, card)
	return card, s.backends.observe(ctx, "memberships.create", true, err)
}

func (s *membershipService) Update(ctx context.Context, card *domain.MembershipCard) (*domain.MembershipCard, error) {
	if err := validateCard(card); err != nil {
		return nil, err
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	return card, s.backends.observe(ctx, "memberships.update", true, repos.Memberships.Update(ctx, card))
}

func (s *membershipService) Delete(ctx context.Context, id string) error {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "memberships.delete", true, repos.Memberships.Delete(ctx, id))
}
