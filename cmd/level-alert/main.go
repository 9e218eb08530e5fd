// Command level-alert is an AWS Lambda fed by the status archive's DynamoDB
// stream. It publishes an SNS alert whenever an archived reading is at or
// above the dam's maximum level.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/cloud"
)

type levelAlerter interface {
	SendLevelAlert(ctx context.Context, damID string, level, maxLevel float64, unit string) error
}

type reading struct {
	DamID    string
	Level    float64
	MaxLevel float64
	Unit     string
}

func number(img map[string]events.DynamoDBAttributeValue, key string) (float64, bool) {
	v, ok := img[key]
	if !ok || v.DataType() != events.DataTypeNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Number(), 64)
	return f, err == nil
}

func str(img map[string]events.DynamoDBAttributeValue, key string) string {
	v, ok := img[key]
	if !ok || v.DataType() != events.DataTypeString {
		return ""
	}
	return v.String()
}

// breach extracts a reading from a stream record when it crosses the maximum.
func breach(rec events.DynamoDBEventRecord) (reading, bool) {
	if rec.EventName != string(events.DynamoDBOperationTypeInsert) &&
		rec.EventName != string(events.DynamoDBOperationTypeModify) {
		return reading{}, false
	}
	img := rec.Change.NewImage
	level, ok := number(img, "currentWaterLevel")
	if !ok {
		return reading{}, false
	}
	maxLevel, ok := number(img, "maxLevel")
	if !ok || maxLevel <= 0 || level < maxLevel {
		return reading{}, false
	}
	unit := str(img, "levelUnit")
	if unit == "" {
		unit = "m"
	}
	return reading{DamID: str(img, "damId"), Level: level, MaxLevel: maxLevel, Unit: unit}, true
}

type handler struct {
	alerts levelAlerter
}

// Handle alerts on every breaching record. Publish failures are returned so
// the stream batch is retried.
func (h *handler) Handle(ctx context.Context, ev events.DynamoDBEvent) error {
	var sent int
	for _, rec := range ev.Records {
		r, ok := breach(rec)
		if !ok {
			continue
		}
		if err := h.alerts.SendLevelAlert(ctx, r.DamID, r.Level, r.MaxLevel, r.Unit); err != nil {
			return fmt.Errorf("alert dam %s: %w", r.DamID, err)
		}
		sent++
	}
	log.Info().Int("records", len(ev.Records)).Int("alerts", sent).Msg("stream batch processed")
	return nil
}

func main() {
	ctx := context.Background()
	alerts, err := cloud.NewSNSClient(ctx, os.Getenv("AWS_REGION"), os.Getenv("AWS_SNS_TOPIC_ARN"))
	if err != nil {
		log.Fatal().Err(err).Msg("sns client")
	}
	h := &handler{alerts: alerts}
	lambda.Start(h.Handle)
}
