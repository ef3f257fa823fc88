package chart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/kundali/internal/domain/natal"
	apperrors "github.com/yanqian/kundali/pkg/errors"
)

const defaultListLimit = 50

// Service exposes natal chart capabilities.
type Service interface {
	Preview(ctx context.Context, req Request) (Response, error)
	Create(ctx context.Context, owner string, req Request) (Response, error)
	Get(ctx context.Context, owner, id string) (Response, error)
	List(ctx context.Context, owner string) ([]Summary, error)
}

type service struct {
	cfg      Config
	computer Computer
	repo     Repository
	cache    Cache
	archive  Archive
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the chart domain.
func NewService(cfg Config, computer Computer, repo Repository, cache Cache, archive Archive, logger *slog.Logger) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	return &service{
		cfg:      cfg,
		computer: computer,
		repo:     repo,
		cache:    cache,
		archive:  archive,
		logger:   logger.With("component", "chart.service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Preview(ctx context.Context, req Request) (Response, error) {
	birth, utc, err := resolveBirth(req)
	if err != nil {
		return Response{}, err
	}
	result, cached, err := s.compute(ctx, birth, utc)
	if err != nil {
		return Response{}, err
	}
	resp := buildResponse(strings.TrimSpace(req.Name), strings.TrimSpace(req.Place), birth, result)
	resp.Cached = cached
	return resp, nil
}

func (s *service) Create(ctx context.Context, owner string, req Request) (Response, error) {
	if strings.TrimSpace(owner) == "" {
		return Response{}, apperrors.Wrap("invalid_token", "owner is required", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Response{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	birth, utc, err := resolveBirth(req)
	if err != nil {
		return Response{}, err
	}
	result, cached, err := s.compute(ctx, birth, utc)
	if err != nil {
		return Response{}, err
	}

	record := Record{
		ID:        uuid.New(),
		Owner:     owner,
		Name:      name,
		Place:     strings.TrimSpace(req.Place),
		Birth:     birth,
		Chart:     result,
		CreatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return Response{}, apperrors.Wrap("storage_error", "failed to persist chart", err)
	}

	resp := recordResponse(record)
	resp.Cached = cached
	s.snapshot(ctx, record, resp)
	s.logger.Info("chart stored", "chartId", record.ID, "owner", owner, "lagna", result.Lagna.Sign)
	return resp, nil
}

func (s *service) Get(ctx context.Context, owner, id string) (Response, error) {
	chartID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Response{}, apperrors.Wrap("not_found", "chart not found", nil)
	}
	record, found, err := s.repo.Get(ctx, owner, chartID)
	if err != nil {
		return Response{}, apperrors.Wrap("storage_error", "failed to load chart", err)
	}
	if !found || record.Owner != owner {
		return Response{}, apperrors.Wrap("not_found", "chart not found", nil)
	}
	return recordResponse(record), nil
}

func (s *service) List(ctx context.Context, owner string) ([]Summary, error) {
	records, err := s.repo.List(ctx, owner, s.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list charts", err)
	}
	out := make([]Summary, 0, len(records))
	for _, record := range records {
		out = append(out, summarize(record))
	}
	return out, nil
}

func (s *service) compute(ctx context.Context, birth natal.BirthInput, utc time.Time) (natal.ChartResult, bool, error) {
	key := cacheKey(birth, utc)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("chart cache lookup failed", "error", err)
		} else if ok {
			s.logger.Debug("chart cache hit", "key", key)
			return cached, true, nil
		}
	}

	result, err := s.computer.Compute(ctx, birth)
	if err != nil {
		return natal.ChartResult{}, false, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, key, result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("chart cache save failed", "error", err)
		}
	}
	return result, false, nil
}

// snapshot archives the stored chart. Failures are logged; the repository
// remains the system of record.
func (s *service) snapshot(ctx context.Context, record Record, resp Response) {
	if s.archive == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode chart snapshot", "chartId", record.ID, "error", err)
		return
	}
	key := archiveKey(s.cfg.ArchivePrefix, record)
	if err := s.archive.Put(ctx, key, payload, "application/json"); err != nil {
		s.logger.Error("failed to archive chart snapshot", "chartId", record.ID, "key", key, "error", err)
	}
}

func resolveBirth(req Request) (natal.BirthInput, time.Time, error) {
	if req.Lat == nil || req.Lon == nil {
		return natal.BirthInput{}, time.Time{}, apperrors.Wrap("invalid_input", "lat and lon are required", nil)
	}
	birth := natal.BirthInput{
		Date:      strings.TrimSpace(req.DOB),
		Time:      strings.TrimSpace(req.TOB),
		Timezone:  strings.TrimSpace(req.TZ),
		Latitude:  *req.Lat,
		Longitude: *req.Lon,
	}
	if birth.Timezone == "" {
		birth.Timezone = natal.DefaultTimezone
	}
	utc, err := birth.UTC()
	if err != nil {
		return natal.BirthInput{}, time.Time{}, apperrors.Wrap("invalid_input", "invalid birth data", err)
	}
	return birth, utc, nil
}

func cacheKey(birth natal.BirthInput, utc time.Time) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f", utc.Format(time.RFC3339), birth.Latitude, birth.Longitude)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func archiveKey(prefix string, record Record) string {
	key := fmt.Sprintf("%s/%s.json", sanitizeSegment(record.Owner), record.ID)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

func sanitizeSegment(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.', r == '@':
			return r
		default:
			return '_'
		}
	}, value)
}

func buildResponse(name, place string, birth natal.BirthInput, result natal.ChartResult) Response {
	return Response{
		Name:    name,
		Place:   place,
		Birth:   birth,
		Chart:   result,
		Houses:  natal.HouseSigns(result.Lagna.Sign),
		Aspects: natal.Aspects(result),
	}
}

func recordResponse(record Record) Response {
	resp := buildResponse(record.Name, record.Place, record.Birth, record.Chart)
	resp.ID = record.ID.String()
	created := record.CreatedAt
	resp.CreatedAt = &created
	return resp
}

func summarize(record Record) Summary {
	summary := Summary{
		ID:        record.ID.String(),
		Name:      record.Name,
		Place:     record.Place,
		Date:      record.Birth.Date,
		Time:      record.Birth.Time,
		LagnaSign: record.Chart.Lagna.Sign,
		CreatedAt: record.CreatedAt,
	}
	if sun, ok := record.Chart.Planet(natal.Sun); ok {
		summary.SunSign = sun.Sign
	}
	if moon, ok := record.Chart.Planet(natal.Moon); ok {
		summary.MoonSign = moon.Sign
		summary.MoonNakshatra = moon.Nakshatra
	}
	return summary
}
