package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"kw8/gym-app/internal/domain"
)

// RankingService manages leaderboards. Rankings live only in the remote
// backend: with it disabled, List returns nothing and writes fail with
// ErrRemoteDisabled.
type RankingService interface {
	List(ctx context.Context) ([]domain.Ranking, error)
	Get(ctx context.Context, id string) (*domain.Ranking, error)
	Create(ctx context.Context, ranking *domain.Ranking) (*domain.Ranking, error)
	Update(ctx context.Context, ranking *domain.Ranking) (*domain.Ranking, error)
	Delete(ctx context.Context, id string) error
	// AddEntry records the user's result, replacing an earlier one. Entries
	// with weight and reps are ranked by their estimated one-rep max.
	AddEntry(ctx context.Context, rankingID string, entry domain.RankingEntry) (*domain.Ranking, error)
	RemoveEntry(ctx context.Context, rankingID, userID string) (*domain.Ranking, error)
}

type rankingService struct {
	backends *Backends
}

func NewRankingService(backends *Backends) RankingService {
	return &rankingService{backends: backends}
}

func (s *rankingService) List(ctx context.Context) ([]domain.Ranking, error) {
	if !s.backends.RemoteSelected(ctx) {
		return []domain.Ranking{}, nil
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	rankings, err := repos.Rankings.List(ctx)
	return rankings, s.backends.observe(ctx, "rankings.list", true, err)
}

func (s *rankingService) Get(ctx context.Context, id string) (*domain.Ranking, error) {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	ranking, err := repos.Rankings.GetByID(ctx, id)
	return ranking, s.backends.observe(ctx, "rankings.get", true, err)
}

func (s *rankingService) Create(ctx context.Context, ranking *domain.Ranking) (*domain.Ranking, error) {
	ranking.Name = strings.TrimSpace(ranking.Name)
	if ranking.Name == "" {
		return nil, validationError("ranking name is required")
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(ranking.Entries)
	_, err = repos.Rankings.Create(ctx, ranking)
	return ranking, s.backends.observe(ctx, "rankings.create", true, err)
}

func (s *rankingService) Update(ctx context.Context, ranking *domain.Ranking) (*domain.Ranking, error) {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(ranking.Entries)
	return ranking, s.backends.observe(ctx, "rankings.update", true, repos.Rankings.Update(ctx, ranking))
}

func (s *rankingService) Delete(ctx context.Context, id string) error {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "rankings.delete", true, repos.Rankings.Delete(ctx, id))
}

func (s *rankingService) AddEntry(ctx context.Context, rankingID string, entry domain.RankingEntry) (*domain.Ranking, error) {
	if strings.TrimSpace(entry.UserID) == "" {
		return nil, validationError("entry userId is required")
	}
	if entry.Weight < 0 || entry.Reps < 0 {
		return nil, validationError("weight and reps cannot be negative")
	}
	if entry.Weight > 0 {
		entry.OneRepMax = domain.CalculateOneRepMax(entry.Weight, entry.Reps)
		entry.Value = entry.OneRepMax
	}
	if entry.Unit == "" {
		entry.Unit = "kg"
	}
	if entry.Date == "" {
		entry.Date = time.Now().UTC().Format(time.DateOnly)
	}

	ranking, err := s.Get(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.RankingEntry, 0, len(ranking.Entries)+1)
	for _, e := range ranking.Entries {
		if e.UserID != entry.UserID {
			entries = append(entries, e)
		}
	}
	ranking.Entries = append(entries, entry)
	return s.Update(ctx, ranking)
}

func (s *rankingService) RemoveEntry(ctx context.Context, rankingID, userID string) (*domain.Ranking, error) {
	ranking, err := s.Get(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.RankingEntry, 0, len(ranking.Entries))
	for _, e := range ranking.Entries {
		if e.UserID != userID {
			entries = append(entries, e)
		}
	}
	ranking.Entries = entries
	return s.Update(ctx, ranking)
}

// sortEntries orders by value, best first.
func sortEntries(entries []domain.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
}
