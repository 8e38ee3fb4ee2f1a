package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Johnnypham7496/users-api/internal/config"
	"github.com/Johnnypham7496/users-api/internal/database"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port
}

func TestServe(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:  "127.0.0.1",
		ServerPort:     freePort(t),
		DatabaseDriver: database.DriverSQLite,
		DatabaseURL:    "file:app_serve_test?mode=memory&cache=shared",
		LogLevel:       "info",
		SeedTestData:   true,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, cfg)
	}()

	url := fmt.Sprintf("http://%s/users/v1/darth.vader", cfg.ListenAddress())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeUnsupportedDriver(t *testing.T) {
	cfg := &config.Config{
		ServerPort:     freePort(t),
		DatabaseDriver: "mysql",
	}

	err := Serve(context.Background(), cfg)
	require.ErrorIs(t, err, database.ErrUnsupportedDriver)
}

func TestRunMissingConfig(t *testing.T) {
	require.Error(t, Run("does_not_exist.env"))
}
