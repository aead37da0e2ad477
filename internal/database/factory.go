package database

import (
	"fmt"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/database/memory"
	"github.com/Rana718/retailgen/internal/database/mysql"
	"github.com/Rana718/retailgen/internal/database/postgres"
	"github.com/Rana718/retailgen/internal/database/sqlite"
)

// NewSink returns an unconnected sink for one of config.Providers.
func NewSink(provider string) (Sink, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s. Supported providers: %v", provider, config.Providers)
	}
}
