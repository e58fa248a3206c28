package main

import (
	"context"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/redis"
)

// Health-check adapters for the readiness endpoint.

type postgresHealthChecker struct {
	conn *postgres.Connection
}

func (c *postgresHealthChecker) Name() string {
	return "postgres"
}

func (c *postgresHealthChecker) Check(ctx context.Context) error {
	return c.conn.HealthCheck(ctx)
}

type redisHealthChecker struct {
	client *redis.Client
}

func (c *redisHealthChecker) Name() string {
	return "redis"
}

func (c *redisHealthChecker) Check(ctx context.Context) error {
	return c.client.Ping(ctx)
}

//Personal.AI order the ending
