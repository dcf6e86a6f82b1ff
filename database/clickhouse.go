package database

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const (
	chDialTimeout = 5 * time.Second
	chPingTimeout = 10 * time.Second
)

// ClickHouseClient wraps the native-TCP connection holding the append-only
// search query stream.
type ClickHouseClient struct {
	Conn clickhouse.Conn
}

// NewClickHouseDB connects using the CLICKHOUSE_* environment variables and
// verifies the connection with a bounded ping.
func NewClickHouseDB() (*ClickHouseClient, error) {
	host := os.Getenv("CLICKHOUSE_HOST")
	port := os.Getenv("CLICKHOUSE_NATIVE_PORT")
	dbName := os.Getenv("CLICKHOUSE_DB_NAME")
	if host == "" || port == "" || dbName == "" {
		return nil, fmt.Errorf("CLICKHOUSE_HOST, CLICKHOUSE_NATIVE_PORT and CLICKHOUSE_DB_NAME must be set")
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{net.JoinHostPort(host, port)},
		Auth: clickhouse.Auth{
			Database: dbName,
			Username: os.Getenv("CLICKHOUSE_USERNAME"),
			Password: os.Getenv("CLICKHOUSE_PASSWORD"),
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "shoplens-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		DialTimeout: chDialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening clickhouse connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), chPingTimeout)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging clickhouse: %w", err)
	}

	log.Println("Connected to ClickHouse.")
	return &ClickHouseClient{Conn: conn}, nil
}

// Close tears down the native connection.
func (c *ClickHouseClient) Close() {
	if c.Conn == nil {
		return
	}
	if err := c.Conn.Close(); err != nil {
		log.Printf("Error closing ClickHouse connection: %v", err)
		return
	}
	log.Println("ClickHouse connection closed.")
}
