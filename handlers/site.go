package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/strnadel/strnadel-api/internal/errs"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/schema"
	"github.com/strnadel/strnadel-api/internal/site"
	"github.com/strnadel/strnadel-api/pkg/logger"
	"github.com/strnadel/strnadel-api/pkg/metrics"
)

// APIName is reported by the liveness endpoint.
const APIName = "STRNADEL engineering API"

// maxDiagnosticCollections caps the collection names listed by /test.
const maxDiagnosticCollections = 10

// SiteHandler serves the public site API.
type SiteHandler struct {
	svc            *site.Service
	inspector      repository.Inspector
	databaseURLSet bool
}

// Root is the liveness probe; it never touches the store.
func (h *SiteHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": APIName, "status": "ok"})
}

// Diagnostics reports the state of the document store. It always answers 200:
// every failure is rendered into the "database" status string.
func (h *SiteHandler) Diagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnose(c.Request.Context()))
}

func (h *SiteHandler) diagnose(ctx context.Context) (resp gin.H) {
	resp = gin.H{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      "❌ Not Set",
		"database_name":     "❌ Not Set",
		"connection_status": "Not Connected",
		"collections":       []string{},
	}
	if h.databaseURLSet {
		resp["database_url"] = "✅ Set"
	}
	defer func() {
		if r := recover(); r != nil {
			resp["database"] = "❌ Error: " + errs.Sanitize(fmt.Sprint(r), 80)
		}
	}()

	if h.inspector == nil {
		resp["database"] = "⚠️  Available but not initialized"
		return resp
	}
	resp["database"] = "✅ Available"
	if name := h.inspector.Name(); name != "" {
		resp["database_name"] = name
	} else {
		resp["database_name"] = "✅ Connected"
	}
	resp["connection_status"] = "Connected"

	names, err := h.inspector.ListCollectionNames(ctx)
	if err != nil {
		resp["database"] = "⚠️  Connected but Error: " + errs.Sanitize(err.Error(), 80)
		return resp
	}
	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	if names == nil {
		names = []string{}
	}
	resp["collections"] = names
	resp["database"] = "✅ Connected & Working"
	return resp
}

// CreateInquiry validates the contact form payload and stores it.
func (h *SiteHandler) CreateInquiry(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		h.fail(c, "inquiries", errs.NewValidationError("body", "unreadable request body", "object"))
		return
	}
	var in schema.Inquiry
	if err := schema.Bind(data, &in); err != nil {
		h.fail(c, "inquiries", err)
		return
	}
	id, err := h.svc.SubmitInquiry(c.Request.Context(), &in)
	if err != nil {
		h.fail(c, "inquiries", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *SiteHandler) ListCaseStudies(c *gin.Context) {
	h.list(c, "case-studies", site.DefaultCaseStudyLimit, h.svc.ListCaseStudies)
}

func (h *SiteHandler) ListJobs(c *gin.Context) {
	h.list(c, "jobs", site.DefaultJobLimit, h.svc.ListJobs)
}

func (h *SiteHandler) ListTeam(c *gin.Context) {
	h.list(c, "team", site.DefaultTeamLimit, h.svc.ListTeam)
}

type listFunc func(ctx context.Context, limit int64) ([]repository.Document, error)

func (h *SiteHandler) list(c *gin.Context, route string, def int64, fetch listFunc) {
	limit, err := parseLimit(c, def)
	if err != nil {
		h.fail(c, route, err)
		return
	}
	docs, err := fetch(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, route, err)
		return
	}
	if docs == nil {
		docs = []repository.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

// parseLimit reads ?limit=N. Absent means def, 0 means no limit.
func parseLimit(c *gin.Context, def int64) (int64, error) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, errs.NewValidationError("limit", "must be a non-negative integer", "integer")
	}
	return n, nil
}

func (h *SiteHandler) fail(c *gin.Context, route string, err error) {
	_ = c.Error(err)

	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailures.WithLabelValues(route).Inc()
		fields := ve.Fields
		if fields == nil {
			fields = []errs.FieldError{}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	var se *errs.StorageError
	if errors.As(err, &se) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error", "detail": se.Public()})
		return
	}
	logger.Errorf("%s: unexpected error: %v", route, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
