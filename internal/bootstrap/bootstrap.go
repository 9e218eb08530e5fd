// Package bootstrap turns the loaded configuration into running services.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/cloud"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/database"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

// Logging applies the configured log level to the global logger.
func Logging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(config.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// Options builds service options from config. Cloud clients are only created
// when USE_CLOUD_SERVICES is set.
func Options(ctx context.Context) (service.Options, error) {
	opts := service.DefaultOptions()
	opts.StatusHistory = service.Limits{Default: config.StatusHistoryDefaultLimit(), Max: config.StatusHistoryMaxLimit()}
	opts.EventHistory = service.Limits{Default: config.EventHistoryDefaultLimit(), Max: config.EventHistoryMaxLimit()}
	opts.Report = service.Limits{Default: config.ReportDefaultLimit(), Max: config.ReportMaxLimit()}
	opts.WetThreshold = config.WetThreshold()
	opts.GeoJSONDir = config.GeoJSONDir()

	if config.JWTSecret() != "" {
		tokens, err := auth.NewTokenManager(config.JWTSecret(), config.JWTRefreshSecret(),
			config.JWTExpire(), config.JWTRefreshExpire())
		if err != nil {
			return opts, fmt.Errorf("token manager: %w", err)
		}
		opts.Tokens = tokens
	} else {
		log.Warn().Msg("JWT_SECRET not set, authentication disabled")
	}

	if !config.UseCloudServices() {
		return opts, nil
	}
	region := config.AWSRegion()

	archive, err := cloud.NewTelemetryArchive(ctx, region, config.DynamoDBTable())
	if err != nil {
		return opts, err
	}
	opts.Archiver = archive

	store, err := cloud.NewS3Client(ctx, region, config.S3Bucket())
	if err != nil {
		return opts, err
	}
	opts.Reports = store
	opts.Images = store

	if arn := config.SNSTopicArn(); arn != "" {
		alerts, err := cloud.NewSNSClient(ctx, region, arn)
		if err != nil {
			return opts, err
		}
		opts.Alerter = alerts
	}
	log.Info().Str("region", region).Msg("cloud services enabled")
	return opts, nil
}

// Services connects to the database and builds the service layer.
func Services(ctx context.Context) (*service.Services, *sqlx.DB, error) {
	opts, err := Options(ctx)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(ctx, config.DBDriver(), config.DBDSN())
	if err != nil {
		return nil, nil, err
	}
	return service.New(db, opts), db, nil
}
