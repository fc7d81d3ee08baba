package reviews

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"avaliacoes/internal/feed"
	"avaliacoes/internal/middleware"
	"avaliacoes/pkg/logger"
	"avaliacoes/pkg/models"
)

const ExportFilename = "avaliacoes_export.json"

type Handler struct {
	Repo *Repo
	Feed *feed.Hub

	now func() time.Time
}

func NewHandler(repo *Repo, hub *feed.Hub) *Handler {
	return &Handler{Repo: repo, Feed: hub, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.list)
	rg.GET("/reviews/:id", h.getByID)
	rg.POST("/reviews", h.create)
	rg.PUT("/reviews/:id", h.update)
	rg.DELETE("/reviews/:id", h.delete)
	rg.POST("/import", h.importAll)
	rg.GET("/export", h.export)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err, "db error")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getByID(c *gin.Context) {
	review, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err, "db error")
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) create(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}

	review, ok := fromCreate(in, h.now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, comment and rating required"})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), review); err != nil {
		h.fail(c, "create", err, "db error")
		return
	}

	h.Feed.Publish(feed.Event{Type: feed.TypeCreated, ID: review.ID})
	c.JSON(http.StatusCreated, review)
}

// update looks the row up before reading the body, so an unknown id is a
// 404 whatever the payload. An empty body counts as {}.
func (h *Handler) update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		h.fail(c, "update", err, "db error")
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		readError(c, err)
		return
	}

	if err := h.Repo.Update(ctx, merge(*existing, in)); err != nil {
		h.fail(c, "update", err, "db error")
		return
	}

	review, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		h.fail(c, "update", err, "db error")
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.Feed.Publish(feed.Event{Type: feed.TypeUpdated, ID: id})
	c.JSON(http.StatusOK, review)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err, "db error")
		return
	}

	h.Feed.Publish(feed.Event{Type: feed.TypeDeleted, ID: id})
	c.Status(http.StatusNoContent)
}

// importAll replaces the whole table. The response counts submitted
// elements, not stored rows: elements that fail the presence checks are
// dropped without error.
func (h *Handler) importAll(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		readError(c, err)
		return
	}

	elems, ok := DecodeArray(body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "array expected"})
		return
	}

	rows := Prepare(elems, h.now())
	if err := h.Repo.ReplaceAll(c.Request.Context(), rows); err != nil {
		h.fail(c, "import", err, "import failed")
		return
	}

	h.Feed.Publish(feed.Event{Type: feed.TypeImported, Count: len(rows)})
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": len(elems)})
}

func (h *Handler) export(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, "export", err, "db error")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	c.JSON(http.StatusOK, items)
}

// Prepare turns raw import elements into rows, skipping any element that
// does not decode or lacks id, title, comment or rating.
func Prepare(elems []json.RawMessage, now time.Time) []models.Review {
	rows := make([]models.Review, 0, len(elems))
	for _, raw := range elems {
		var in models.ReviewInput
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		review, ok := fromImport(in, now)
		if !ok {
			continue
		}
		rows = append(rows, review)
	}
	return rows
}

// DecodeArray splits a JSON array body into its elements. ok is false for
// anything other than an array, including null.
func DecodeArray(body []byte) ([]json.RawMessage, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		readError(c, err)
		return false
	}
	return true
}

func readError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
}

func (h *Handler) fail(c *gin.Context, op string, err error, msg string) {
	logger.WithFields(logrus.Fields{
		"op":         op,
		"request_id": middleware.GetRequestID(c),
	}).Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
