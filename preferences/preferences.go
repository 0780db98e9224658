package preferences

import (
	"context"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"go.uber.org/zap"
)

// Well-known keys.
const (
	KeyLastStoreID = "lastStoreId"
	KeyStoreID     = "storeId"
)

// Preferences is an open key/value mapping persisted in one slot. Writes
// merge into what is stored.
type Preferences struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func New(store storage.Store, log *zap.Logger) *Preferences {
	return &Preferences{store: store, log: logger.OrNop(log)}
}

// Get returns all preferences. Corrupt state reads as empty.
func (p *Preferences) Get(ctx context.Context) map[string]any {
	prefs := map[string]any{}
	if _, err := storage.GetJSON(ctx, p.store, storage.KeyPreferences, &prefs); err != nil {
		logger.FromContext(ctx, p.log).Warn("unable to read preferences", zap.Error(err))
		return map[string]any{}
	}
	if prefs == nil {
		return map[string]any{}
	}
	return prefs
}

// Value returns a single preference.
func (p *Preferences) Value(ctx context.Context, key string) (any, bool) {
	v, ok := p.Get(ctx)[key]
	return v, ok
}

// String returns a preference rendered as a string, or "".
func (p *Preferences) String(ctx context.Context, key string) string {
	switch v := p.Get(ctx)[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Set stores key=value and returns the merged mapping.
func (p *Preferences) Set(ctx context.Context, key string, value any) (map[string]any, error) {
	return p.Merge(ctx, map[string]any{key: value})
}

// Merge writes every entry of update over the stored mapping.
func (p *Preferences) Merge(ctx context.Context, update map[string]any) (map[string]any, error) {
	for k := range update {
		if strings.TrimSpace(k) == "" {
			return nil, apperrors.InvalidInput("preference key is required")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prefs := p.Get(ctx)
	maps.Copy(prefs, update)
	if err := storage.SetJSON(ctx, p.store, storage.KeyPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
