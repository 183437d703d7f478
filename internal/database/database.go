package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// OpenDB creates and checks the MySQL pool that backs CART_STORE=mysql.
func OpenDB(ctx context.Context, dsn string, log logrus.FieldLogger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "database: open mysql")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database: ping mysql")
	}

	log.Info("mysql connection pool established")
	return db, nil
}

// OpenRedis connects to the Redis instance that backs CART_STORE=redis.
func OpenRedis(ctx context.Context, addr, password string, db int, log logrus.FieldLogger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "database: ping redis %s", addr)
	}

	log.WithField("addr", addr).Info("redis client connected")
	return client, nil
}
