package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"focuspit/config"
	"focuspit/internal/domain/service"

	"go.uber.org/fx"
)

// localPresence keeps online markers in process memory. It backs development
// setups that run without Redis; markers expire lazily on read.
type localPresence struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func newLocalPresence() *localPresence {
	return &localPresence{expires: make(map[string]time.Time)}
}

func (p *localPresence) SetOnline(_ context.Context, uid string, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expires[uid] = time.Now().Add(ttl)

	return nil
}

func (p *localPresence) SetOffline(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.expires, uid)

	return nil
}

func (p *localPresence) IsOnline(_ context.Context, uid string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.online(uid), nil
}

func (p *localPresence) OnlineStatus(_ context.Context, uids []string) (map[string]bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := make(map[string]bool, len(uids))
	for _, uid := range uids {
		status[uid] = p.online(uid)
	}

	return status, nil
}

// online must be called with the mutex held.
func (p *localPresence) online(uid string) bool {
	deadline, ok := p.expires[uid]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(p.expires, uid)

		return false
	}

	return true
}

func (p *localPresence) Close() error {
	return nil
}

// PresenceParams holds dependencies for PresenceService, injected by Fx
type PresenceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewPresenceService selects the presence backend: Redis when configured,
// otherwise an in-process map.
func NewPresenceService(params PresenceParams) (service.PresenceService, error) {
	if params.Config.Redis == nil {
		params.Logger.Info("No Redis configured, using in-process presence")

		return newLocalPresence(), nil
	}

	svc, err := NewRedisPresence(params.Config.Redis, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return svc.Close()
		},
	})

	return svc, nil
}
