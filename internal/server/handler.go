package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/chart"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/exchange"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

// maxImportBytes bounds the body of an import request.
const maxImportBytes = 32 << 20

// Handler serves the API routes.
type Handler struct {
	svc tracker.Service
	now func() time.Time
}

func NewHandler(svc tracker.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// ClassifyQuery is a point given either on the plane (x, y) or in affect
// space (valence, arousal).
type ClassifyQuery struct {
	X       *float64 `form:"x"`
	Y       *float64 `form:"y"`
	Valence *float64 `form:"valence"`
	Arousal *float64 `form:"arousal"`
}

// StatsQuery is Filter plus the number of top emotions to rank.
type StatsQuery struct {
	tracker.Filter
	Top int `form:"top"`
}

type PeriodsQuery struct {
	tracker.Filter
	Year  int `form:"year"`
	Month int `form:"month"`
}

type UndoResponse struct {
	Undone bool `json:"undone"`
}

type CollectionRequest struct {
	Name string `json:"name"`
}

type AssignRequest struct {
	Collection string `json:"collection"`
}

type TagsRequest struct {
	Tags []string `json:"tags"`
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := statusOf(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.fail(c, fmt.Errorf("%w: %v", tracker.ErrInvalidRequest, err))
}

func (h *Handler) index(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.badRequest(c, fmt.Errorf("index %q is not a number", c.Param("index")))
		return 0, false
	}
	return index, true
}

func (h *Handler) filter(c *gin.Context) (tracker.Filter, bool) {
	var filter tracker.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.badRequest(c, err)
		return tracker.Filter{}, false
	}
	return filter, true
}

func (h *Handler) Classify(c *gin.Context) {
	var q ClassifyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	switch {
	case q.X != nil && q.Y != nil:
		c.JSON(http.StatusOK, affect.Read(affect.Position{X: *q.X, Y: *q.Y}))
	case q.Valence != nil && q.Arousal != nil:
		c.JSON(http.StatusOK, affect.ReadValenceArousal(*q.Valence, *q.Arousal))
	default:
		h.badRequest(c, fmt.Errorf("either x and y or valence and arousal are required"))
	}
}

func (h *Handler) ListEntries(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	entries, err := h.svc.Entries(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) LogEntry(c *gin.Context) {
	var req tracker.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	entry, err := h.svc.Log(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) EditEntry(c *gin.Context) {
	index, ok := h.index(c)
	if !ok {
		return
	}
	var req tracker.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	entry, err := h.svc.Edit(c.Request.Context(), index, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	index, ok := h.index(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), index); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AssignCollection(c *gin.Context) {
	index, ok := h.index(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.svc.AssignCollection(c.Request.Context(), index, req.Collection); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) TagEntry(c *gin.Context) {
	index, ok := h.index(c)
	if !ok {
		return
	}
	var req TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.svc.TagEntry(c.Request.Context(), index, req.Tags); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Undo(c *gin.Context) {
	undone, err := h.svc.Undo(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, UndoResponse{Undone: undone})
}

func (h *Handler) Stats(c *gin.Context) {
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	summary, err := h.svc.Summary(c.Request.Context(), q.Filter, q.Top)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) Periods(c *gin.Context) {
	var q PeriodsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	indexed, err := h.svc.Entries(c.Request.Context(), q.Filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, statistics.CalculatePeriods(entriesOf(indexed), q.Year, q.Month))
}

func (h *Handler) Trend(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	trend, err := h.svc.Trend(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *Handler) Chart(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	indexed, err := h.svc.Entries(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, entriesOf(indexed)); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) Export(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	format := exchange.FormatJSON
	if v := c.Query("format"); v != "" {
		if err := format.Set(v); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	indexed, err := h.svc.Entries(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := exchange.Export(&buf, entriesOf(indexed), format); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exchange.FileName(format, h.now())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handler) Import(c *gin.Context) {
	format := exchange.FormatJSON
	if v := c.Query("format"); v != "" {
		if err := format.Set(v); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	entries, err := exchange.ParseImport(data, format)
	if err != nil {
		h.fail(c, err)
		return
	}
	result, err := h.svc.Import(c.Request.Context(), entries)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.svc.Collections(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, collections)
}

func (h *Handler) AddCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	collection, err := h.svc.AddCollection(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, collection)
}

func (h *Handler) RemoveCollection(c *gin.Context) {
	if err := h.svc.RemoveCollection(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.svc.Tags(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func entriesOf(indexed []tracker.IndexedEntry) []emotionlog.Entry {
	out := make([]emotionlog.Entry, len(indexed))
	for i, ie := range indexed {
		out[i] = ie.Entry
	}
	return out
}
