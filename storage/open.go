package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/a7med3yad/Cartify-Frontend/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend cfg.Backend names. The returned closer releases
// backend connections.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, io.Closer, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nopCloser{}, nil
	case "file", "":
		s, err := NewFileStore(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Namespace), client, nil
	case "dynamodb":
		client, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, nil, err
		}
		return NewDynamoStore(client, cfg.DynamoDBTable, cfg.Namespace), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
