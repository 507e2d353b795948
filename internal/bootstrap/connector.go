package bootstrap

import (
	"context"

	"github.com/neuroautomation/neuro-backend/internal/store"
)

// Database is a connected database client.
type Database interface {
	Disconnect(ctx context.Context) error
}

// Connector makes one attempt to connect to the database at uri.
type Connector interface {
	Connect(ctx context.Context, uri string) (Database, error)
}

type ConnectorFunc func(ctx context.Context, uri string) (Database, error)

func (f ConnectorFunc) Connect(ctx context.Context, uri string) (Database, error) {
	return f(ctx, uri)
}

// MongoConnector adapts a store.Connector to Connector.
func MongoConnector(c *store.Connector) Connector {
	return ConnectorFunc(func(ctx context.Context, uri string) (Database, error) {
		m, err := c.Connect(ctx, uri)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}
