package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/content-studio/internal/agent"
	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/BerylCAtieno/content-studio/internal/normalize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher runs one generation request.
type Dispatcher interface {
	Handle(ctx context.Context, req models.GenerationRequest) (*dispatch.Result, error)
}

// BrandSource supplies the brand used when a message carries none.
type BrandSource interface {
	Brand() models.BrandProfile
}

type A2AHandler struct {
	dispatcher Dispatcher
	brands     BrandSource
	logger     *zap.Logger
}

func NewA2AHandler(d Dispatcher, brands BrandSource, logger *zap.Logger) *A2AHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &A2AHandler{dispatcher: d, brands: brands, logger: logger}
}

const promptForInput = "Send a topic to caption, or a data part with a generation request (action, topic, platform, platforms)."

// HandleStudio processes A2A messages
func (h *A2AHandler) HandleStudio(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("a2a request", zap.ByteString("body", body))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.Method == "" {
		// Some callers post the message params without the JSON-RPC wrapper.
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		var params MessageParams
		if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
			h.logger.Warn("invalid params", zap.Error(err))
			h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
			return
		}
		result := h.runTask(c.Request.Context(), params.Message)
		h.sendSuccessResponse(c, rpcReq.ID, result)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.logger.Warn("request is neither JSON-RPC nor a message")
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.runTask(c.Request.Context(), params.Message)
	h.sendSuccessResponse(c, json.RawMessage(`"direct-message"`), result)
}

// runTask turns a message into a generation request and always returns a
// task, failed or not.
func (h *A2AHandler) runTask(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.New().String()
	}

	req, found := h.extractRequest(msg)
	if !found {
		return newTaskResult(taskID, contextID, StateInputRequired, promptForInput)
	}
	if req.Brand == nil {
		b := h.brands.Brand()
		req.Brand = &b
	}

	log := h.logger.With(zap.String("task_id", taskID), zap.String("action", string(req.Action)))
	res, err := h.dispatcher.Handle(ctx, req)
	if err != nil {
		log.Warn("task failed", zap.String("kind", string(dispatch.Classify(err))), zap.Error(err))
		return newTaskResult(taskID, contextID, StateFailed, failureText(err))
	}

	text := formatResult(res)
	result := newTaskResult(taskID, contextID, StateCompleted, text)

	parts := []MessagePart{TextPart(text)}
	if data, err := DataPart(res); err == nil {
		parts = append(parts, data)
	} else {
		log.Warn("failed to encode result data", zap.Error(err))
	}
	result.Artifacts = []Artifact{{
		ArtifactID: uuid.New().String(),
		Name:       artifactName(res.Action),
		Parts:      parts,
	}}

	log.Info("task completed", zap.Int("warnings", len(res.Warnings)))
	return result
}

// extractRequest prefers a data part holding a generation request and
// falls back to using the message text as a caption topic.
func (h *A2AHandler) extractRequest(msg A2AMessage) (models.GenerationRequest, bool) {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case PartData:
			if len(part.Data) == 0 {
				continue
			}
			var req models.GenerationRequest
			if err := json.Unmarshal(part.Data, &req); err == nil && req.Action != "" {
				return req, true
			}
			if text := latestHistoryText(part.Data); text != "" {
				texts = append(texts, text)
			}
		case PartText:
			if text := cleanText(part.Text); text != "" {
				texts = append(texts, text)
			}
		}
	}

	topic := strings.TrimSpace(strings.Join(texts, " "))
	if topic == "" {
		return models.GenerationRequest{}, false
	}
	return models.GenerationRequest{Action: models.ActionCaption, Topic: topic}, true
}

// latestHistoryText picks the most recent user text out of a data part that
// carries conversation history as a list of parts.
func latestHistoryText(data json.RawMessage) string {
	var history []MessagePart
	if err := json.Unmarshal(data, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind != PartText {
			continue
		}
		text := cleanText(history[i].Text)
		if text == "" || isStatusEcho(text) {
			continue
		}
		return text
	}
	return ""
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}

// isStatusEcho reports progress chatter that chat clients replay as history.
func isStatusEcho(s string) bool {
	lower := strings.ToLower(s)
	return strings.Trim(s, ".") == "" ||
		strings.HasPrefix(lower, "generating") ||
		strings.HasPrefix(lower, "creating")
}

func failureText(err error) string {
	if errors.Is(err, dispatch.ErrInvalidAction) {
		return "Invalid action"
	}
	var fe *normalize.FormatError
	if errors.As(err, &fe) {
		return fmt.Sprintf("%v\n\nRaw response: %s", err, fe.Raw)
	}
	return err.Error()
}

func newTaskResult(taskID, contextID, state, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

// ServeAgentCard serves the agent card with its url set to this host.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}

	card, err := agent.CardFor(scheme + "://" + c.Request.Host)
	if err != nil {
		h.logger.Error("agent card not available", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", card)
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result any) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
