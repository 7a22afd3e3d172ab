package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/store"
)

type selectionRequest struct {
	EmotionID string `json:"emotionId" binding:"required"`
}

func (s *Server) listEmotions(c *gin.Context) {
	mode, err := emotion.ParseMode(c.Query("mode"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	defs, err := s.p.Catalog(c.Request.Context(), mode)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

func (s *Server) listSelections(c *gin.Context) {
	sels, err := s.p.Selections(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sels)
}

func (s *Server) addSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	sel, err := s.p.AddSelection(c.Request.Context(), req.EmotionID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel)
}

func (s *Server) removeSelection(c *gin.Context) {
	if err := s.p.RemoveSelection(c.Request.Context(), c.Param("deletionId")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listRecords(c *gin.Context) {
	var since *emotion.Date
	if raw := c.Query("since"); raw != "" {
		day, err := emotion.ParseDate(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		since = &day
	}
	rows, err := s.p.Records(c.Request.Context(), since)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createRecord(c *gin.Context) {
	var req emotion.ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	req.RecordID = ""
	row, err := s.p.SaveRecord(c.Request.Context(), req, false)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (s *Server) updateRecord(c *gin.Context) {
	var req emotion.ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	req.RecordID = c.Param("id")
	row, err := s.p.SaveRecord(c.Request.Context(), req, true)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) monthly(c *gin.Context) {
	points, err := s.p.Monthly(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.p.Categories(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.fail(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrExists):
		s.fail(c, http.StatusConflict, err)
	case errors.Is(err, store.ErrInvalid),
		errors.Is(err, store.ErrUnknownEmotion),
		errors.Is(err, store.ErrNotOptional):
		s.fail(c, http.StatusBadRequest, err)
	default:
		s.log.Errorw("store failure", "path", c.Request.URL.Path, "error", err)
		s.fail(c, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (s *Server) fail(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
