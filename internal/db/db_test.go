package db

import (
	"os"
	"testing"
)

func TestConnectPostgres(t *testing.T) {
	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		// Integration only: skip unless a database is reachable.
		if os.Getenv("DATABASE_URL") == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}
		db := ConnectPostgres()
		defer db.Close()
	})
}
