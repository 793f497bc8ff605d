package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.Fatalf("error pinging database: %v", err)
	}

	sqlBytes, err := os.ReadFile("migrations/migrations.sql")
	if err != nil {
		logrus.Fatalf("error reading migrations file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logrus.Info("Applying migrations...")
	if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
		logrus.Fatalf("error applying migrations: %v", err)
	}
	logrus.Info("Migrations applied successfully")
}
