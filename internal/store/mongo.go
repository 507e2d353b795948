package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/auth"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/neuroautomation/neuro-backend/internal/core"
)

const (
	maxPoolSize = 20

	// mongo error code for AuthenticationFailed.
	codeAuthenticationFailed = 18
)

// Mongo holds a connected client.
type Mongo struct {
	Client *mongo.Client
}

// Disconnect closes the client's connections.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Connector makes a single connect+ping attempt against MongoDB.
type Connector struct {
	// ServerSelectionTimeout bounds how long the driver waits for a usable
	// server. Zero keeps the driver default.
	ServerSelectionTimeout time.Duration
	AppName                string
}

func NewConnector(serverSelectionTimeout time.Duration, appName string) *Connector {
	return &Connector{ServerSelectionTimeout: serverSelectionTimeout, AppName: appName}
}

// Connect establishes a client and verifies it with a ping. Every failure is
// returned as a *core.DatabaseConnectError.
func (c *Connector) Connect(ctx context.Context, uri string) (*Mongo, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, core.NewDatabaseConnectError(core.ReasonUnsetURI, errors.New("connection string is empty"))
	}

	clientOpts := options.Client().ApplyURI(uri).SetMaxPoolSize(maxPoolSize)
	if c.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(c.ServerSelectionTimeout)
	}
	if c.AppName != "" {
		clientOpts.SetAppName(c.AppName)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, core.NewDatabaseConnectError(classifyConnect(err), fmt.Errorf("connect: %w", err))
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, core.NewDatabaseConnectError(classifyPing(err), fmt.Errorf("ping: %w", err))
	}

	return &Mongo{Client: client}, nil
}

// classifyConnect handles errors from mongo.Connect, which only fails on
// option validation or, for mongodb+srv URIs, on the SRV/TXT lookup.
func classifyConnect(err error) core.ConnectReason {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return core.ReasonUnreachable
	}
	return core.ReasonInvalidURI
}

func classifyPing(err error) core.ConnectReason {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return core.ReasonAuthFailed
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeAuthenticationFailed {
		return core.ReasonAuthFailed
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, topology.ErrServerSelectionTimeout),
		errors.As(err, &opErr), errors.As(err, &dnsErr):
		return core.ReasonUnreachable
	}
	return core.ReasonUnknown
}
