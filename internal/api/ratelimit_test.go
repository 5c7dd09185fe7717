package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiter(1, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "clients have separate budgets")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))

	now = now.Add(visitorTTL + time.Second)
	l.Allow("10.0.0.3")
	assert.Len(t, l.visitors, 1, "idle clients are forgotten")
}

func TestClientLimiterSweepsAtMostOncePerInterval(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	l := NewClientLimiter(10, 10)
	l.now = func() time.Time { return now }

	l.Allow("a")

	now = start.Add(visitorTTL - 10*time.Second)
	l.Allow("b")

	now = start.Add(visitorTTL + 20*time.Second)
	l.Allow("c")
	assert.Contains(t, l.visitors, "a", "no sweep within the interval of the last one")

	now = start.Add(visitorTTL + 80*time.Second)
	l.Allow("d")
	assert.NotContains(t, l.visitors, "a")
	assert.Len(t, l.visitors, 3)
}

func TestClientAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/chat", nil)
	r.RemoteAddr = "10.0.0.9:5123"
	assert.Equal(t, "10.0.0.9", clientAddr(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.9")
	assert.Equal(t, "203.0.113.7", clientAddr(r))
}
