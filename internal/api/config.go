package api

import (
	"net"
	"strconv"
	"time"
)

type Config struct {
	Port                   int           `envconfig:"PORT" default:"3000"`
	Host                   string        `envconfig:"HOST" default:"0.0.0.0"`
	MongoURI               string        `envconfig:"MONGODB_URI"`
	ServerSelectionTimeout time.Duration `envconfig:"MONGODB_SERVER_SELECTION_TIMEOUT" default:"30s"`
	Environment            string        `envconfig:"NODE_ENV" default:"development"`
	LogLevel               string        `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr            string        `envconfig:"METRICS_ADDR" default:"0.0.0.0:9090"`
	AllowedOrigins         []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Addr is the host:port the API listener binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
