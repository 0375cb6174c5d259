package controller

import (
	"errors"
	"net/http"

	"github.com/bassista/go_folio/internal/content"
	"github.com/gin-gonic/gin"
)

// ContentSource yields the current resume.
type ContentSource interface {
	Get() (*content.Resume, error)
}

// ContentController serves the resume model.
type ContentController struct {
	source ContentSource
}

func NewContentController(source ContentSource) *ContentController {
	return &ContentController{source: source}
}

// GetResume returns the resume as JSON.
func (cc *ContentController) GetResume(c *gin.Context) {
	resume, ok := cc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resume)
}

// GetPerson returns the schema.org Person for the resume.
func (cc *ContentController) GetPerson(c *gin.Context) {
	resume, ok := cc.load(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/ld+json; charset=utf-8")
	c.JSON(http.StatusOK, content.Person(resume))
}

func (cc *ContentController) load(c *gin.Context) (*content.Resume, bool) {
	resume, err := cc.source.Get()
	if err != nil {
		if errors.Is(err, content.ErrNoContent) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content not loaded"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read content"})
		return nil, false
	}
	return resume, true
}
