package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRun_ServesUntilCancelled(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(nethttp.StatusOK, "pong") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, e, "127.0.0.1:0", time.Second, zerolog.Nop()) }()

	var addr string
	for i := 0; i < 100 && addr == ""; i++ {
		if a := e.ListenerAddr(); a != nil {
			addr = a.String()
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if addr == "" {
		cancel()
		t.Fatalf("server did not start")
	}

	resp, err := nethttp.Get(fmt.Sprintf("http://%s/ping", addr))
	if err != nil {
		cancel()
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
