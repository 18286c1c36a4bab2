package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"mapnote/config"
	"mapnote/internal/domain/constants"
	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/service"
	"mapnote/internal/usecase"
)

// stubActivity records calls and returns a fixed error.
type stubActivity struct {
	recorded []string
	err      error
}

func (s *stubActivity) Record(_ context.Context, messageID string, _ *service.MapEvent) error {
	s.recorded = append(s.recorded, messageID)

	return s.err
}

func (s *stubActivity) History(context.Context, uuid.UUID, int) ([]entity.MapActivity, error) {
	return nil, nil
}

var _ usecase.ActivityUsecase = (*stubActivity)(nil)

func newTestPushHandler(cfg *config.Config, activity usecase.ActivityUsecase) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:     cfg,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		ActivityUC: activity,
	})
}

func pushBody(t *testing.T, messageID string, event any) []byte {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = messageID
	msg.Subscription = "projects/local/subscriptions/map-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func servePush(h *PushHandler, body []byte, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_RecordsEvent(t *testing.T) {
	activity := &stubActivity{}
	h := newTestPushHandler(&config.Config{}, activity)

	body := pushBody(t, "msg-1", service.MapEvent{MapID: uuid.NewString(), Type: service.EventFeatureCommitted})
	rec := servePush(h, body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"msg-1"}, activity.recorded)
}

func TestPushHandler_MalformedMessages(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "not json", body: []byte("{")},
		{name: "data not base64", body: []byte(`{"message":{"data":"%%%","messageId":"1"}}`)},
		{
			name: "data not an event",
			body: []byte(`{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("[1,2]")) + `","messageId":"1"}}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := &stubActivity{}
			rec := servePush(newTestPushHandler(&config.Config{}, activity), tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, activity.recorded)
		})
	}
}

func TestPushHandler_RetryPolicy(t *testing.T) {
	event := service.MapEvent{MapID: uuid.NewString(), Type: service.EventViewportChanged}

	t.Run("storage failure asks for redelivery", func(t *testing.T) {
		activity := &stubActivity{err: errors.New("store unavailable")}
		rec := servePush(newTestPushHandler(&config.Config{}, activity), pushBody(t, "m", event), nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("rejected event is acknowledged", func(t *testing.T) {
		activity := &stubActivity{err: errors.Wrap(domainerrors.ErrInvalidEvent.WithDetails("event type is required"), "record")}
		rec := servePush(newTestPushHandler(&config.Config{}, activity), pushBody(t, "m", event), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h := newTestPushHandler(&config.Config{}, &stubActivity{})
	ctx := context.Background()

	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attributes"}
	assert.Equal(t, "from-attributes", h.extractRequestID(ctx, &msg, &service.MapEvent{RequestID: "from-event"}))

	assert.Equal(t, "from-event", h.extractRequestID(ctx, &PubSubMessage{}, &service.MapEvent{RequestID: "from-event"}))

	generated := h.extractRequestID(ctx, &PubSubMessage{}, &service.MapEvent{})
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}

func TestPushHandler_VerifiesGoogleToken(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvProduction

	activity := &stubActivity{}
	h := newTestPushHandler(cfg, activity)
	require.True(t, h.verifyPushAuth)

	var gotAudience string
	h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good" {
			return nil, errors.New("bad signature")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}

	body := pushBody(t, "msg-1", service.MapEvent{MapID: uuid.NewString(), Type: service.EventFeatureDeleted})

	rec := servePush(h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, http.Header{"Authorization": {"Bearer bad"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com/push", gotAudience)
	assert.Equal(t, []string{"msg-1"}, activity.recorded)
}

func TestPushHandler_RejectsForeignIssuer(t *testing.T) {
	h := newTestPushHandler(&config.Config{}, &stubActivity{})
	h.validateToken = func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Issuer: "https://evil.example"}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	req.Header.Set("Authorization", "Bearer token")

	err := h.verifyPubSubToken(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestNewPushHandler_SkipsVerificationInDevelop(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvDevelop
	assert.False(t, newTestPushHandler(cfg, &stubActivity{}).verifyPushAuth)

	cfg = &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}}
	cfg.Env.Env = constants.EnvProduction
	assert.False(t, newTestPushHandler(cfg, &stubActivity{}).verifyPushAuth)
}
