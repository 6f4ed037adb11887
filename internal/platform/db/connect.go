package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the payments database. Credentials come from the
// environment or, when DB_SECRET_ID is set, from AWS Secrets Manager.
func Connect(port uint, host, dbname, secretID string) (*gorm.DB, error) {
	sslDisabled := os.Getenv("DB_SSL_MODE_DISABLE")
	var sslMode string
	if sslDisabled == "true" {
		sslMode = " sslmode=disable"
	}
	username, password, err := retrieveCredentials(secretID)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s/%s: %w", host, dbname, err)
	}
	return database, nil
}

// Open resolves host/port/name from the environment-backed settings and
// connects. Port falls back to the Postgres default when unparseable.
func Open(host, portStr, dbname, secretID string) (*gorm.DB, error) {
	port, err := strconv.ParseUint(portStr, 10, 32)
	if err != nil {
		port = 5432
	}
	return Connect(uint(port), host, dbname, secretID)
}
