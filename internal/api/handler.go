// Package api exposes the background removal pipeline over HTTP.
package api

import (
	"image"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"

	"github.com/cutout-dev/cutout"
)

// Remover is the part of cutout.Engine the handler needs.
type Remover interface {
	RemoveBackground(img image.Image) (image.Image, error)
}

type Handler struct {
	remover Remover
	log     *slog.Logger
}

func NewHandler(remover Remover, log *slog.Logger) *Handler {
	return &Handler{remover: remover, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.health)
	r.POST("/api/remove", h.remove)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// remove accepts a multipart upload under the "image" field and responds
// with the processed image as base64 PNG, mirroring what a desktop shell
// would hand to its UI layer.
func (h *Handler) remove(c *gin.Context) {
	reqID := ksuid.New().String()

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided, use 'image' as the form field name"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.Warn("open upload failed", "request", reqID, "file", file.Filename, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer f.Close()

	img, err := cutout.Decode(f)
	if err != nil {
		h.log.Warn("decode failed", "request", reqID, "file", file.Filename, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported or corrupt image"})
		return
	}

	out, err := h.remover.RemoveBackground(img)
	if err != nil {
		h.log.Error("background removal failed", "request", reqID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "background removal failed"})
		return
	}

	b64, err := cutout.EncodePNGBase64(out)
	if err != nil {
		h.log.Error("encode failed", "request", reqID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode result"})
		return
	}

	h.log.Info("background removed", "request", reqID, "file", file.Filename,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	c.JSON(http.StatusOK, gin.H{"request": reqID, "image": b64})
}
