package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, time.Minute)
	app := fiber.New()
	app.Use(limiter.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != fiber.StatusTooManyRequests {
		t.Errorf("status codes = %v", codes)
	}
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	limiter.limiterFor("10.0.0.1")
	limiter.limiterFor("10.0.0.2")

	limiter.evictIdle(time.Now())
	if got := limiter.size(); got != 2 {
		t.Fatalf("fresh visitors evicted, size = %d", got)
	}
	limiter.evictIdle(time.Now().Add(2 * time.Minute))
	if got := limiter.size(); got != 0 {
		t.Errorf("idle visitors kept, size = %d", got)
	}
}

func TestRequestLoggerAssignsID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error {
		if RequestID(c) == "" {
			t.Error("request id missing inside handler")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response has no request id header")
	}

	req := httptest.NewRequest("GET", "/boom", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTeapot || resp.Header.Get(RequestIDHeader) != "fixed-id" {
		t.Errorf("status %d id %q", resp.StatusCode, resp.Header.Get(RequestIDHeader))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[1].Level != zap.WarnLevel || entries[1].ContextMap()["request_id"] != "fixed-id" {
		t.Errorf("unexpected log entry %+v", entries[1])
	}
}
