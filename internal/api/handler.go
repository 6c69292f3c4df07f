// Package api serves the studio over a JSON REST interface.
package api

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/logging"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/BerylCAtieno/content-studio/internal/studio"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	dispatcher *dispatch.Dispatcher
	studio     *studio.Studio
	logger     *zap.Logger
}

func NewHandler(d *dispatch.Dispatcher, s *studio.Studio, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{dispatcher: d, studio: s, logger: logger}
}

// Register mounts the REST routes and the health check on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/generate", h.Generate)

	api.GET("/brand", h.GetBrand)
	api.PUT("/brand", h.ReplaceBrand)
	api.PATCH("/brand", h.PatchBrand)

	api.GET("/contents", h.ListContents)
	api.POST("/contents", h.CreateContent)
	api.GET("/contents/:id", h.GetContent)
	api.PATCH("/contents/:id", h.UpdateContent)
	api.DELETE("/contents/:id", h.DeleteContent)
	api.GET("/contents/:id/share", h.ShareContent)
	api.GET("/stats", h.Stats)

	api.GET("/platforms", func(c *gin.Context) { ok(c, http.StatusOK, models.AllPlatforms()) })
	api.GET("/industries", func(c *gin.Context) { ok(c, http.StatusOK, models.AllIndustries()) })
	api.GET("/tones", func(c *gin.Context) { ok(c, http.StatusOK, models.AllTones()) })
}

// Generate runs one action. Without a brand in the body the studio's
// current brand is used.
func (h *Handler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Brand == nil {
		b := h.studio.Brand()
		req.Brand = &b
	}

	res, err := h.dispatcher.Handle(c.Request.Context(), req)
	if err != nil {
		status, body := generationFailure(err)
		h.logger.Warn("generation request failed",
			zap.String("request_id", logging.RequestID(c)),
			zap.String("action", string(req.Action)),
			zap.String("kind", string(dispatch.Classify(err))),
			zap.Error(err))
		c.AbortWithStatusJSON(status, body)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: res.Data, Warnings: res.Warnings})
}

func (h *Handler) GetBrand(c *gin.Context) {
	ok(c, http.StatusOK, h.studio.Brand())
}

func (h *Handler) ReplaceBrand(c *gin.Context) {
	var b models.BrandProfile
	if err := c.ShouldBindJSON(&b); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := h.studio.SetBrand(b)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, http.StatusOK, saved)
}

func (h *Handler) PatchBrand(c *gin.Context) {
	var u models.BrandUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := h.studio.UpdateBrand(u)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, http.StatusOK, saved)
}

func (h *Handler) ListContents(c *gin.Context) {
	f := studio.Filter{
		Platform: models.Platform(c.Query("platform")),
		Status:   models.ContentStatus(c.Query("status")),
	}
	ok(c, http.StatusOK, h.studio.Contents(f))
}

func (h *Handler) CreateContent(c *gin.Context) {
	var in models.StoredContent
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := h.studio.AddContent(in)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Info("content saved",
		zap.String("id", saved.ID),
		zap.String("platform", string(saved.Platform)))
	ok(c, http.StatusCreated, saved)
}

func (h *Handler) GetContent(c *gin.Context) {
	content, err := h.studio.Content(c.Param("id"))
	if err != nil {
		h.contentError(c, err)
		return
	}
	ok(c, http.StatusOK, content)
}

func (h *Handler) UpdateContent(c *gin.Context) {
	var u models.ContentUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	content, err := h.studio.UpdateContent(c.Param("id"), u)
	if err != nil {
		h.contentError(c, err)
		return
	}
	ok(c, http.StatusOK, content)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	if err := h.studio.DeleteContent(c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ShareContent returns the content as plain text with its hashtags.
func (h *Handler) ShareContent(c *gin.Context) {
	content, err := h.studio.Content(c.Param("id"))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.String(http.StatusOK, content.ShareText())
}

func (h *Handler) Stats(c *gin.Context) {
	ok(c, http.StatusOK, h.studio.Stats())
}

func (h *Handler) contentError(c *gin.Context, err error) {
	if errors.Is(err, studio.ErrNotFound) {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	fail(c, http.StatusBadRequest, err.Error())
}
