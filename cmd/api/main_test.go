package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-fileshare/internal/config"

	"github.com/gofiber/fiber/v2"
)

func TestServerBodyLimitCoversUploadCap(t *testing.T) {
	cfg := &config.Config{MaxUploadMB: 10}
	app := NewFiberServer(cfg)

	if got, want := app.Config().BodyLimit, int(cfg.MaxUploadMB<<20); got <= want {
		t.Fatalf("BodyLimit = %d, must exceed the %d byte upload cap", got, want)
	}
}

// Bodies over fasthttp's 4MB default but under the upload cap must reach the
// handler so the size check can respond instead of the transport.
func TestMidSizeBodyReachesHandler(t *testing.T) {
	app := NewFiberServer(&config.Config{MaxUploadMB: 10})

	reached := false
	app.Post("/upload-stub", func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/upload-stub", bytes.NewReader(make([]byte, 5<<20)))
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if !reached {
		t.Fatal("handler never ran")
	}
}
