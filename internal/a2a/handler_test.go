package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/generator"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedBrand struct{}

func (fixedBrand) Brand() models.BrandProfile {
	return models.DefaultBrand(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result *TaskResult     `json:"result"`
	Error  *RPCError       `json:"error"`
}

func newServer(gen generator.Generator) *gin.Engine {
	h := NewA2AHandler(dispatch.New(gen), fixedBrand{}, nil)
	r := gin.New()
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST("/a2a/studio", h.HandleStudio)
	return r
}

func post(t *testing.T, r http.Handler, body string) rpcResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/a2a/studio", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func rpc(method string, parts string) string {
	return `{"jsonrpc":"2.0","id":"req-1","method":"` + method + `","params":{"message":{"kind":"message","role":"user","parts":` + parts + `}}}`
}

func TestHandleStudio_TextBecomesCaptionTopic(t *testing.T) {
	var seen string
	gen := generator.Func(func(_ context.Context, p string) (string, error) {
		seen = p
		return `{"caption":"Glow from within","hashtags":["glow","serum"]}`, nil
	})

	resp := post(t, newServer(gen), rpc("message/send", `[{"kind":"text","text":"<p>night serum launch</p>"}]`))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)

	assert.Equal(t, `"req-1"`, string(resp.ID))
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Equal(t, "Glow from within\n\n#glow #serum", resp.Result.Status.Message.Parts[0].Text)
	assert.Contains(t, seen, "night serum launch")
	assert.Contains(t, seen, "Glow Beauty")

	require.Len(t, resp.Result.Artifacts, 1)
	artifact := resp.Result.Artifacts[0]
	assert.Equal(t, "Caption", artifact.Name)
	require.Len(t, artifact.Parts, 2)
	assert.Equal(t, PartData, artifact.Parts[1].Kind)

	var result dispatch.Result
	require.NoError(t, json.Unmarshal(artifact.Parts[1].Data, &result))
	assert.Equal(t, models.ActionCaption, result.Action)
}

func TestHandleStudio_DataPartCarriesRequest(t *testing.T) {
	gen := generator.Func(func(_ context.Context, p string) (string, error) {
		require.Contains(t, p, "(linkedin)")
		return `[{"day":"Monday","platform":"linkedin","idea":"Founder story","time":"9:00 AM"}]`, nil
	})

	parts := `[{"kind":"data","data":{"action":"calendar","platforms":["linkedin"]}}]`
	resp := post(t, newServer(gen), rpc("agent/task", parts))
	require.NotNil(t, resp.Result)

	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	text := resp.Result.Status.Message.Parts[0].Text
	assert.Contains(t, text, "- **Monday** · LinkedIn at 9:00 AM: Founder story")
	assert.Contains(t, text, "- **Tuesday**: nothing planned")
	assert.Contains(t, text, "expected 7 calendar days, got 1")
}

func TestHandleStudio_HistoryDataPart(t *testing.T) {
	var seen string
	gen := generator.Func(func(_ context.Context, p string) (string, error) {
		seen = p
		return `{"caption":"ok","hashtags":[]}`, nil
	})

	parts := `[{"kind":"data","data":[
		{"kind":"text","text":"spring skincare tips"},
		{"kind":"text","text":"Generating caption..."},
		{"kind":"text","text":"..."}
	]}]`
	resp := post(t, newServer(gen), rpc("message/send", parts))
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Contains(t, seen, "spring skincare tips")
}

func TestHandleStudio_FailuresBecomeFailedTasks(t *testing.T) {
	cases := map[string]struct {
		gen   generator.Generator
		parts string
		want  string
	}{
		"upstream": {
			gen:   generator.Func(func(context.Context, string) (string, error) { return "", errors.New("quota exceeded") }),
			parts: `[{"kind":"text","text":"launch"}]`,
			want:  "AI generation failed: quota exceeded",
		},
		"unknown action": {
			gen:   generator.Func(func(context.Context, string) (string, error) { return "[]", nil }),
			parts: `[{"kind":"data","data":{"action":"remix"}}]`,
			want:  "Invalid action",
		},
		"prose": {
			gen:   generator.Func(func(context.Context, string) (string, error) { return "no can do", nil }),
			parts: `[{"kind":"data","data":{"action":"ideas"}}]`,
			want:  "Raw response: no can do",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := post(t, newServer(tc.gen), rpc("message/send", tc.parts))
			require.NotNil(t, resp.Result)
			assert.Equal(t, StateFailed, resp.Result.Status.State)
			assert.Contains(t, resp.Result.Status.Message.Parts[0].Text, tc.want)
			assert.Empty(t, resp.Result.Artifacts)
		})
	}
}

func TestHandleStudio_EmptyMessageAsksForInput(t *testing.T) {
	called := false
	gen := generator.Func(func(context.Context, string) (string, error) {
		called = true
		return "", nil
	})

	resp := post(t, newServer(gen), rpc("message/send", `[{"kind":"text","text":"   "}]`))
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateInputRequired, resp.Result.Status.State)
	assert.False(t, called)
}

func TestHandleStudio_ProtocolErrors(t *testing.T) {
	gen := generator.Func(func(context.Context, string) (string, error) { return "", nil })
	r := newServer(gen)

	resp := post(t, r, `{"jsonrpc":"1.0","id":1,"method":"message/send","params":{}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)
	assert.Equal(t, "1", string(resp.ID))

	resp = post(t, r, `{"jsonrpc":"2.0","id":2,"method":"tasks/cancel","params":{}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)

	resp = post(t, r, `{"jsonrpc":"2.0","id":3,"method":"message/send","params":"nope"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)

	resp = post(t, r, `not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParseError, resp.Error.Code)
}

func TestHandleStudio_DirectMessage(t *testing.T) {
	gen := generator.Func(func(context.Context, string) (string, error) {
		return `{"caption":"hi","hashtags":[]}`, nil
	})

	resp := post(t, newServer(gen), `{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"hello"}]}}`)
	require.NotNil(t, resp.Result)
	assert.Equal(t, `"direct-message"`, string(resp.ID))
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
}

func TestServeAgentCard(t *testing.T) {
	r := newServer(generator.Func(func(context.Context, string) (string, error) { return "", nil }))

	req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	req.Host = "studio.local:8080"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var card map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://studio.local:8080/a2a/studio", card["url"])
	assert.Contains(t, card, "capabilities")
}

func TestServeAgentCard_ForwardedProto(t *testing.T) {
	r := newServer(generator.Func(func(context.Context, string) (string, error) { return "", nil }))

	cases := map[string]string{
		"https":               "https://studio.local/a2a/studio",
		"HTTPS":               "https://studio.local/a2a/studio",
		"javascript":          "http://studio.local/a2a/studio",
		"https://evil.example": "http://studio.local/a2a/studio",
	}
	for proto, want := range cases {
		t.Run(proto, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
			req.Host = "studio.local"
			req.Header.Set("X-Forwarded-Proto", proto)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			var card map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
			assert.Equal(t, want, card["url"])
		})
	}
}
