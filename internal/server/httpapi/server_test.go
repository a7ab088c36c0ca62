package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
)

func testConfig(addr string) *config.Config {
	return &config.Config{
		EndpointAddr:          addr,
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		CORSAllowedOrigins:    "http://localhost:3000",
		GinMode:               "test",
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewHTTPServer(testConfig("127.0.0.1:0"), nopLogger{}, (*services.UserService)(nil), (*services.PostService)(nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewHTTPServer(testConfig("127.0.0.1:99999"), nopLogger{}, (*services.UserService)(nil), (*services.PostService)(nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected a listen error for an invalid port")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not report the listen error within timeout")
	}
}

func TestSplitOrigins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"http://a", "http://b"}, splitOrigins("http://a, http://b"))
	assert.Equal(t, []string{"http://a"}, splitOrigins("http://a"))
	assert.Empty(t, splitOrigins(""))
}
