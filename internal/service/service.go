package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
)

// Archiver mirrors history rows to secondary storage.
type Archiver interface {
	Archive(ctx context.Context, h domain.DamStatusHistory) error
}

// Alerter publishes operator notifications.
type Alerter interface {
	SendFloodAlert(ctx context.Context, dam domain.Dam, safety domain.Safety) error
}

// ReportStore keeps exported reports and hands back a download URL.
type ReportStore interface {
	UploadReport(ctx context.Context, key string, body []byte) (string, error)
}

// ImageStore keeps profile images and returns their URL.
type ImageStore interface {
	UploadProfileImage(ctx context.Context, userID, filename, contentType string, body []byte) (string, error)
}

// Limits bounds a history window.
type Limits struct {
	Default int
	Max     int
}

// Clamp maps non-positive requests to the default and caps the rest.
func (l Limits) Clamp(n int) int {
	if n <= 0 {
		return l.Default
	}
	if n > l.Max {
		return l.Max
	}
	return n
}

type Options struct {
	Tokens        *auth.TokenManager
	StatusHistory Limits
	EventHistory  Limits
	Report        Limits
	WetThreshold  float64
	GeoJSONDir    string

	// Optional cloud integrations; nil disables them.
	Archiver Archiver
	Alerter  Alerter
	Reports  ReportStore
	Images   ImageStore
}

// DefaultOptions returns the built-in limits without tokens or cloud integrations.
func DefaultOptions() Options {
	return Options{
		StatusHistory: Limits{Default: 50, Max: 1000},
		EventHistory:  Limits{Default: 100, Max: 500},
		Report:        Limits{Default: 200, Max: 1000},
		WetThreshold:  20,
		GeoJSONDir:    "geojson",
	}
}

type Services struct {
	Repos          *repository.Repos
	Status         *StatusRecorder
	Reports        *ReportAggregator
	Geo            *GeoService
	Identity       *IdentityService
	Hierarchy      *HierarchyService
	Safety         *SafetyService
	Sensors        *SensorService
	SupportingInfo *SupportingInfoService
	Usage          *UsageService
	Features       *FeatureService
	Ingest         *IngestService
}

func New(db *sqlx.DB, opts Options) *Services {
	repos := repository.New(db)
	status := NewStatusRecorder(repos.Status, repos.Dams, opts.Archiver)
	overviews := &overviewLoader{dams: repos.Dams, status: repos.Status, usage: repos.Usage}
	return &Services{
		Repos:   repos,
		Status:  status,
		Reports: NewReportAggregator(repos.Status, opts.StatusHistory, opts.EventHistory, opts.Report, opts.Reports),
		Geo: &GeoService{repos: repos, overviews: overviews, wetThreshold: opts.WetThreshold,
			geoJSONDir: opts.GeoJSONDir},
		Identity:       &IdentityService{users: repos.Users, dams: repos.Dams, overviews: overviews, tokens: opts.Tokens, images: opts.Images},
		Hierarchy:      &HierarchyService{repos: repos},
		Safety:         &SafetyService{safety: repos.Safety, dams: repos.Dams, alerter: opts.Alerter},
		Sensors:        &SensorService{sensors: repos.Sensors, dams: repos.Dams},
		SupportingInfo: &SupportingInfoService{info: repos.SupportingInfo, dams: repos.Dams},
		Usage:          &UsageService{usage: repos.Usage, dams: repos.Dams, rivers: repos.Rivers},
		Features:       &FeatureService{features: repos.Features},
		Ingest:         &IngestService{status: status},
	}
}

// storeErr translates a repository error. Missing rows become NotFound with
// notFoundMsg, anything unexpected becomes an internal error.
func storeErr(err error, notFoundMsg, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFoundMsg)
	default:
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return err
		}
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
}

func utcNow() time.Time { return time.Now().UTC() }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// setIf overwrites *dst when v is present.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
