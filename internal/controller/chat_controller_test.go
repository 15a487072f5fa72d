package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staystrong-chat-be/internal/dto"
	"staystrong-chat-be/internal/pkg/serverutils"
	"staystrong-chat-be/internal/service"
	"staystrong-chat-be/pkg/dialogue"
	"staystrong-chat-be/pkg/llm"
)

type echoTurns struct {
	got dialogue.TurnRequest
}

func (e *echoTurns) Handle(_ context.Context, req dialogue.TurnRequest) dialogue.TurnResult {
	e.got = req
	state := req.State.Normalize()
	if strings.TrimSpace(req.Message) == "" {
		return dialogue.TurnResult{State: state}
	}
	state.Strengths = append(state.Strengths, req.Message)
	return dialogue.TurnResult{Reply: "heard: " + req.Message, HasReply: true, Messages: []string{"heard: " + req.Message}, State: state}
}

type noListLLM struct{}

func (noListLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) { return "", nil }
func (noListLLM) Generate(context.Context, string, ...llm.Option) (string, error)    { return "", nil }

func newTestApp(turns service.TurnHandler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	app.Use(serverutils.RequestID())
	svc := service.NewChatService(turns, noListLLM{}, nil, service.RuntimeInfo{IndexSnippets: 3, LexiconEntries: 2, ContactsSource: "file", Provider: "openai"}, nil)
	NewChatController(svc).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp, out
}

func TestChatController_Chat(t *testing.T) {
	turns := &echoTurns{}
	app := newTestApp(turns)

	resp, body := doJSON(t, app, http.MethodPost, "/chat", `{"message":"my nan","state":{"step":"strengths","strengths":["footy"],"worries":[],"crisisPhase":"none"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "heard: my nan", body["reply"])
	state := body["state"].(map[string]any)
	assert.Equal(t, []any{"footy", "my nan"}, state["strengths"])
	assert.NotEmpty(t, resp.Header.Get(serverutils.RequestIDHeader))
	assert.Equal(t, resp.Header.Get(serverutils.RequestIDHeader), turns.got.RequestID)
}

func TestChatController_EmptyMessageHasNullReply(t *testing.T) {
	app := newTestApp(&echoTurns{})

	resp, body := doJSON(t, app, http.MethodPost, "/chat", `{"message":""}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reply, present := body["reply"]
	assert.True(t, present)
	assert.Nil(t, reply)
	assert.NotContains(t, body, "messages")
}

func TestChatController_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "not json", body: `{"message":`, message: "Invalid request body"},
		{name: "too long", body: `{"message":"` + strings.Repeat("a", 4001) + `"}`, message: "message must be at most 4000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, newTestApp(&echoTurns{}), http.MethodPost, "/chat", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestChatController_Reset(t *testing.T) {
	resp, body := doJSON(t, newTestApp(&echoTurns{}), http.MethodPost, "/reset", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ResetResponse
	raw, _ := json.Marshal(body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "strengths", out.State.Step)
	assert.Equal(t, "none", out.State.CrisisPhase)
	assert.Empty(t, out.State.Strengths)
}

func TestChatController_HealthAndModel(t *testing.T) {
	app := newTestApp(&echoTurns{})

	resp, health := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(3), health["indexSnippets"])
	assert.Equal(t, "file", health["contactsSource"])

	resp, model := doJSON(t, app, http.MethodGet, "/debug/model", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "openai", model["provider"])
	assert.Equal(t, false, model["available"])
	assert.NotEmpty(t, model["error"])
}
