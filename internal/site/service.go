package site

import (
	"context"
	"errors"
	"time"

	"github.com/strnadel/strnadel-api/internal/cache"
	"github.com/strnadel/strnadel-api/internal/errs"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/schema"
	"github.com/strnadel/strnadel-api/pkg/logger"
	"github.com/strnadel/strnadel-api/pkg/metrics"
	"github.com/strnadel/strnadel-api/pkg/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default page sizes of the listing endpoints.
const (
	DefaultCaseStudyLimit = 12
	DefaultJobLimit       = 20
	DefaultTeamLimit      = 20
)

// Service maps API operations onto the repository. Every repository failure
// is returned as *errs.StorageError.
type Service struct {
	repo  repository.Repository
	cache *cache.ListingCache
}

// NewService returns a Service. repo may be nil when the process runs
// without a document store; cache may be nil.
func NewService(repo repository.Repository, c *cache.ListingCache) *Service {
	return &Service{repo: repo, cache: c}
}

// SubmitInquiry stores a validated inquiry and returns its id.
func (s *Service) SubmitInquiry(ctx context.Context, in *schema.Inquiry) (string, error) {
	id, err := s.insert(ctx, schema.InquiryCollection, in)
	if err != nil {
		return "", err
	}
	metrics.InquiriesReceived.Inc()
	return id, nil
}

func (s *Service) ListCaseStudies(ctx context.Context, limit int64) ([]repository.Document, error) {
	return s.list(ctx, schema.CaseStudyCollection, limit)
}

func (s *Service) ListJobs(ctx context.Context, limit int64) ([]repository.Document, error) {
	return s.list(ctx, schema.JobOpeningCollection, limit)
}

func (s *Service) ListTeam(ctx context.Context, limit int64) ([]repository.Document, error) {
	return s.list(ctx, schema.TeamMemberCollection, limit)
}

func (s *Service) insert(ctx context.Context, collection string, entity interface{}) (string, error) {
	ctx, span := startSpan(ctx, "insert", collection)
	defer span.End()
	if s.repo == nil {
		failSpan(span, repository.ErrNoStore)
		return "", &errs.StorageError{Op: "insert", Collection: collection, Err: repository.ErrNoStore}
	}
	start := time.Now()
	id, err := s.repo.Insert(ctx, collection, entity)
	observe(collection, "insert", start, err)
	if err != nil {
		failSpan(span, err)
		logger.Errorf("insert into %s failed: %v", collection, err)
		return "", &errs.StorageError{Op: "insert", Collection: collection, Err: err}
	}
	span.SetAttributes(attribute.String("db.document_id", id))
	logger.Debugf("inserted %s/%s", collection, id)
	return id, nil
}

func (s *Service) list(ctx context.Context, collection string, limit int64) ([]repository.Document, error) {
	ctx, span := startSpan(ctx, "fetch", collection)
	defer span.End()
	span.SetAttributes(attribute.Int64("db.limit", limit))
	if docs, ok := s.cache.Get(ctx, collection, limit); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true), attribute.Int("db.documents", len(docs)))
		return docs, nil
	}
	if s.repo == nil {
		failSpan(span, repository.ErrNoStore)
		return nil, &errs.StorageError{Op: "fetch", Collection: collection, Err: repository.ErrNoStore}
	}
	start := time.Now()
	docs, err := s.repo.Fetch(ctx, collection, nil, limit)
	observe(collection, "fetch", start, err)
	if err != nil {
		failSpan(span, err)
		logger.Errorf("fetch from %s failed: %v", collection, err)
		return nil, &errs.StorageError{Op: "fetch", Collection: collection, Err: err}
	}
	span.SetAttributes(attribute.Int("db.documents", len(docs)))
	if err := s.cache.Set(ctx, collection, limit, docs); err != nil {
		logger.Warnf("listing cache set %s: %v", collection, err)
	}
	return docs, nil
}

func startSpan(ctx context.Context, op, collection string) (context.Context, trace.Span) {
	return otel.Tracer(observability.TracerName).Start(ctx, "store."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.collection", collection)),
	)
}

func failSpan(span trace.Span, err error) {
	msg := errs.Sanitize(err.Error(), 120)
	span.RecordError(errors.New(msg))
	span.SetStatus(codes.Error, msg)
}

func observe(collection, op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(collection, op, result).Inc()
	metrics.StoreLatency.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}
