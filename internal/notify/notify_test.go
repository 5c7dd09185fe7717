package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationValidate(t *testing.T) {
	tests := []struct {
		name    string
		n       Notification
		wantErr bool
	}{
		{"email", Notification{Channel: ChannelEmail, To: "a@b.in", Body: "hi"}, false},
		{"sms", Notification{Channel: ChannelSMS, To: "+91 98765 43210", Body: "hi"}, false},
		{"email without at", Notification{Channel: ChannelEmail, To: "owner", Body: "hi"}, true},
		{"sms with letters", Notification{Channel: ChannelSMS, To: "98765abc", Body: "hi"}, true},
		{"missing recipient", Notification{Channel: ChannelSMS, Body: "hi"}, true},
		{"missing body", Notification{Channel: ChannelEmail, To: "a@b.in"}, true},
		{"unknown channel", Notification{Channel: "fax", To: "1234567", Body: "hi"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.n.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func newTestHandler() *Handler {
	h := NewHandler(time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.sleep = func(time.Duration) {}
	return h
}

func TestHandleSend(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"channel":"sms","to":"9876543210","body":"Bill BILL_1 total 118.00"}`))
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"sent","channel":"sms"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"channel":"pigeon","to":"x","body":"y"}`))
	rec = httptest.NewRecorder()
	h.HandleSend(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{`))
	rec = httptest.NewRecorder()
	h.HandleSend(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(newTestHandler().HandleSend))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	err := client.Send(context.Background(), Notification{Channel: ChannelEmail, To: "owner@shop.in", Subject: "Low stock", Body: "Pens are out of stock"})
	assert.NoError(t, err)

	err = client.Send(context.Background(), Notification{Channel: ChannelEmail, To: "nobody", Body: "x"})
	assert.ErrorContains(t, err, "400")
}
