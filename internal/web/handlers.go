package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

const maxBodySize = 64 << 10 // 64KB

type createRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     *tasks.Date `json:"dueDate"`
	Priority    string      `json:"priority"`
	Tags        []string    `json:"tags"`
}

func (s *Server) handleList(c *gin.Context) {
	var f query.Filter
	var err error

	if f.Status, err = query.ParseStatus(c.Query("status")); err != nil {
		badRequest(c, err)
		return
	}
	if p := c.Query("priority"); p != "" {
		if f.Priority, err = tasks.ParsePriority(p); err != nil {
			badRequest(c, err)
			return
		}
	}
	if f.Tags, err = tasks.NormalizeTags(c.QueryArray("tag")); err != nil {
		badRequest(c, err)
		return
	}
	if f.Due, err = query.ParseDueBucket(c.Query("due")); err != nil {
		badRequest(c, err)
		return
	}
	if v := c.Query("includeUndated"); v != "" {
		if f.Due.IncludeUndated, err = strconv.ParseBool(v); err != nil {
			badRequest(c, fmt.Errorf("includeUndated must be true or false"))
			return
		}
	}
	key, err := query.ParseSortKey(c.DefaultQuery("sort", "created"))
	if err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	list, err := s.svc.List(f, key)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}
	if list == nil {
		list = []tasks.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}

func (s *Server) handleGet(c *gin.Context) {
	s.mu.Lock()
	t, err := s.svc.Get(c.Param("id"))
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    t,
	})
}

func (s *Server) handleCreate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	add := service.AddRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.Priority != "" {
		p, err := tasks.ParsePriority(req.Priority)
		if err != nil {
			badRequest(c, err)
			return
		}
		add.Priority = p
	}

	s.mu.Lock()
	t, err := s.svc.Add(add)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    t,
		"message": "Task created",
	})
}

func (s *Server) handleUpdate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}
	ch, err := decodeChanges(fields)
	if err != nil {
		badRequest(c, err)
		return
	}
	if ch.Empty() {
		badRequest(c, errors.New("no changes supplied"))
		return
	}

	s.mu.Lock()
	t, err := s.svc.Update(c.Param("id"), ch)
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    t,
		"message": "Task updated",
	})
}

func (s *Server) handleComplete(c *gin.Context) {
	s.mu.Lock()
	t, err := s.svc.Complete(c.Param("id"))
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"data":           t,
		"elapsedSeconds": int64(t.Elapsed() / time.Second),
		"message":        "Task completed",
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	s.mu.Lock()
	t, err := s.svc.Delete(c.Param("id"))
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      t.ID,
		"message": "Task deleted",
	})
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	st, err := s.svc.Stats()
	s.mu.Unlock()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    st,
	})
}

// decodeChanges maps a PATCH body onto service.Changes. A JSON null dueDate
// clears the due date.
func decodeChanges(fields map[string]json.RawMessage) (service.Changes, error) {
	var ch service.Changes
	for key, raw := range fields {
		var err error
		switch key {
		case "title":
			var v string
			err = json.Unmarshal(raw, &v)
			ch.Title = service.Some(v)
		case "description":
			var v string
			err = json.Unmarshal(raw, &v)
			ch.Description = service.Some(v)
		case "dueDate":
			var v *tasks.Date
			err = json.Unmarshal(raw, &v)
			ch.DueDate = service.Some(v)
		case "priority":
			var v string
			if err = json.Unmarshal(raw, &v); err == nil {
				var p tasks.Priority
				p, err = tasks.ParsePriority(v)
				ch.Priority = service.Some(p)
			}
		case "addTags":
			err = json.Unmarshal(raw, &ch.AddTags)
		case "removeTags":
			err = json.Unmarshal(raw, &ch.RemoveTags)
		case "id":
			var v string
			err = json.Unmarshal(raw, &v)
			ch.ID = service.Some(v)
		case "createdAt":
			var v time.Time
			err = json.Unmarshal(raw, &v)
			ch.CreatedAt = service.Some(v)
		case "completedAt":
			var v time.Time
			err = json.Unmarshal(raw, &v)
			ch.CompletedAt = service.Some(v)
		default:
			return ch, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return ch, fmt.Errorf("field %q: %w", key, err)
		}
	}
	return ch, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// fail maps a service error onto a status code and the error envelope.
// Storage errors are logged and reported generically.
func (s *Server) fail(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := http.StatusInternalServerError
	body := gin.H{
		"success": false,
		"error":   err.Error(),
		"kind":    kind.String(),
	}

	switch kind {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindResolve:
		var amb *query.AmbiguousError
		switch {
		case errors.Is(err, query.ErrTooShort):
			status = http.StatusBadRequest
		case errors.Is(err, query.ErrNotFound):
			status = http.StatusNotFound
		case errors.As(err, &amb):
			status = http.StatusConflict
			body["matches"] = amb.Matches
		}
	case service.KindState:
		status = http.StatusConflict
	case service.KindFormat:
		s.logger.Error("task file unreadable", "error", err)
		body["error"] = "task file and backup are damaged"
	default:
		s.logger.Error("storage error", "error", err)
		body["error"] = "storage error"
	}

	c.JSON(status, body)
}
