package services

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
)

// Status reports whether the backing stores answer.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type StatusService struct {
	db    *sql.DB
	redis redis.UniversalClient
}

func NewStatusService(db *sql.DB, client redis.UniversalClient) *StatusService {
	return &StatusService{db: db, redis: client}
}

func (s *StatusService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.redis.Ping(ctx).Err() == nil,
		DB:    s.db.PingContext(ctx) == nil,
	}
}
