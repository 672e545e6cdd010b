package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/site"
)

// Deps are the collaborators the site routes need. Inspector is nil when the
// process runs without a document store.
type Deps struct {
	Service        *site.Service
	Inspector      repository.Inspector
	DatabaseURLSet bool
	// InquiryLimiter, when set, guards POST /api/inquiries.
	InquiryLimiter gin.HandlerFunc
}

// RegisterSiteRoutes registers the public site API: liveness, diagnostics,
// the inquiry form and the three listings.
func RegisterSiteRoutes(r *gin.Engine, d Deps) {
	h := &SiteHandler{svc: d.Service, inspector: d.Inspector, databaseURLSet: d.DatabaseURLSet}

	r.GET("/", h.Root)
	r.GET("/test", h.Diagnostics)

	api := r.Group("/api")
	if d.InquiryLimiter != nil {
		api.POST("/inquiries", d.InquiryLimiter, h.CreateInquiry)
	} else {
		api.POST("/inquiries", h.CreateInquiry)
	}
	api.GET("/case-studies", h.ListCaseStudies)
	api.GET("/jobs", h.ListJobs)
	api.GET("/team", h.ListTeam)
}
