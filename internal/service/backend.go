package service

import (
	"context"
	"errors"

	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/metrics"
	"kw8/gym-app/internal/repository"
)

// BackendSelector decides per call whether the remote backend serves data.
type BackendSelector interface {
	RemoteEnabled(ctx context.Context) bool
}

// StaticSelector is a fixed choice, typically from configuration.
type StaticSelector bool

func (s StaticSelector) RemoteEnabled(context.Context) bool {
	return bool(s)
}

// FlagSelector reads the persisted flag from the Local Store. The flag only
// chooses a backend; toggling it never touches stored data.
type FlagSelector struct {
	store            *localstore.Store
	remoteConfigured bool
}

func NewFlagSelector(store *localstore.Store, remoteConfigured bool) *FlagSelector {
	return &FlagSelector{store: store, remoteConfigured: remoteConfigured}
}

func (f *FlagSelector) RemoteEnabled(ctx context.Context) bool {
	return f.remoteConfigured && f.store.RemoteEnabled(ctx)
}

// Set persists the flag. Enabling fails when no remote backend is configured.
func (f *FlagSelector) Set(ctx context.Context, enabled bool) error {
	if enabled && !f.remoteConfigured {
		return ErrRemoteUnavailable
	}
	f.store.SetRemoteEnabled(ctx, enabled)
	return nil
}

// Seed stores the initial value unless the flag was already set.
func (f *FlagSelector) Seed(ctx context.Context, enabled bool) {
	if _, ok := f.store.GetItem(ctx, localstore.KeyRemoteEnabled); ok {
		return
	}
	f.store.SetRemoteEnabled(ctx, enabled && f.remoteConfigured)
}

// Backends resolves the repositories of the selected backend on each call.
type Backends struct {
	selector BackendSelector
	local    repository.Repositories
	remote   repository.Repositories
	log      logging.Logger
}

// NewBackends wires both backends. remote may be the zero value when no
// remote store is configured.
func NewBackends(selector BackendSelector, local, remote repository.Repositories, log logging.Logger) *Backends {
	if log == nil {
		log = logging.Discard()
	}
	return &Backends{selector: selector, local: local, remote: remote, log: log.With("component", "backends")}
}

func (b *Backends) remoteConfigured() bool {
	return b.remote.Users != nil
}

// RemoteSelected reports whether calls made now go to the remote backend.
func (b *Backends) RemoteSelected(ctx context.Context) bool {
	return b.selector.RemoteEnabled(ctx)
}

// current returns the selected backend's repositories and whether it is the
// remote one.
func (b *Backends) current(ctx context.Context) (repository.Repositories, bool, error) {
	if !b.selector.RemoteEnabled(ctx) {
		return b.local, false, nil
	}
	if !b.remoteConfigured() {
		return repository.Repositories{}, true, ErrRemoteUnavailable
	}
	return b.remote, true, nil
}

// remoteOnly returns the remote repositories or ErrRemoteDisabled.
func (b *Backends) remoteOnly(ctx context.Context) (repository.Repositories, error) {
	if !b.selector.RemoteEnabled(ctx) {
		return repository.Repositories{}, ErrRemoteDisabled
	}
	if !b.remoteConfigured() {
		return repository.Repositories{}, ErrRemoteUnavailable
	}
	return b.remote, nil
}

// observe counts and logs failed remote calls. Not-found is a normal answer.
func (b *Backends) observe(ctx context.Context, op string, remote bool, err error) error {
	if err == nil || !remote || errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrValidationFailed) {
		return err
	}
	metrics.RecordRemoteError(op)
	b.log.Error(ctx, "remote call failed", "op", op, "err", err)
	return err
}
