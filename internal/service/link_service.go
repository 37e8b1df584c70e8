package service

import (
	"context"
	"net/url"
	"strings"

	"kw8/gym-app/internal/domain"
)

// LinkService manages curated links, a remote-only collection.
type LinkService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Link, error)
	Get(ctx context.Context, id string) (*domain.Link, error)
	Create(ctx context.Context, link *domain.Link) (*domain.Link, error)
	Update(ctx context.Context, link *domain.Link) (*domain.Link, error)
	Delete(ctx context.Context, id string) error
}

type linkService struct {
	backends *Backends
}

func NewLinkService(backends *Backends) LinkService {
	return &linkService{backends: backends}
}

func (s *linkService) List(ctx context.Context, activeOnly bool) ([]domain.Link, error) {
	if !s.backends.RemoteSelected(ctx) {
		return []domain.Link{}, nil
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	links, err := repos.Links.List(ctx)
	if err != nil {
		return nil, s.backends.observe(ctx, "links.list", true, err)
	}
	if !activeOnly {
		return links, nil
	}
	active := []domain.Link{}
	for _, l := range links {
		if l.IsActive {
			active = append(active, l)
		}
	}
	return active, nil
}

func (s *linkService) Get(ctx context.Context, id string) (*domain.Link, error) {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	link, err := repos.Links.GetByID(ctx, id)
	return link, s.backends.observe(ctx, "links.get", true, err)
}

func validateLink(link *domain.Link) error {
	link.Title = strings.TrimSpace(link.Title)
	link.URL = strings.TrimSpace(link.URL)
	if link.Title == "" {
		return validationError("link title is required")
	}
	u, err := url.Parse(link.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationError("invalid link url %q", link.URL)
	}
	return nil
}

func (s *linkService) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	if err := validateLink(link); err != nil {
		return nil, err
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	_, err = repos.Links.Create(ctx, link)
	return link, s.backends.observe(ctx, "links.create", true, err)
}

func (s *linkService) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	if err := validateLink(link); err != nil {
		return nil, err
	}
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return nil, err
	}
	return link, s.backends.observe(ctx, "links.update", true, repos.Links.Update(ctx, link))
}

func (s *linkService) Delete(ctx context.Context, id string) error {
	repos, err := s.backends.remoteOnly(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "links.delete", true, repos.Links.Delete(ctx, id))
}
