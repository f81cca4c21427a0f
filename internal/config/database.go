package config

import (
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/infrastructure/surreal"
)

// DBConfig converts the database block into the pool wrapper's settings.
func (d DatabaseConfig) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		Host:              d.Host,
		Port:              d.Port,
		Username:          d.User,
		Password:          d.Password,
		DBName:            d.Name,
		SSLMode:           d.SSLMode,
		MaxConns:          int32(d.MaxConns),
		MinConns:          int32(d.MinConns),
		MaxConnLifetime:   d.MaxConnLifetime,
		MaxConnIdleTime:   d.MaxConnIdleTime,
		HealthCheckPeriod: d.HealthCheckPeriod,
		MaxRetries:        d.MaxRetries,
		RetryDelay:        d.RetryDelay,
		ConnectTimeout:    d.ConnectTimeout,
	}
}

func (s SurrealConfig) ClientConfig() surreal.Config {
	return surreal.Config{
		Host:      s.Host,
		Port:      s.Port,
		User:      s.User,
		Password:  s.Password,
		Namespace: s.Namespace,
		Database:  s.Database,
	}
}
