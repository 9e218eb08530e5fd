package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// TelemetryArchive mirrors status history rows into a DynamoDB table keyed by
// damId (partition) and createdAt in unix milliseconds (sort). The table's
// stream feeds the level alert function.
type TelemetryArchive struct {
	svc   dynamoAPI
	table string
}

func NewTelemetryArchive(ctx context.Context, region, table string) (*TelemetryArchive, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &TelemetryArchive{svc: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// ArchivedStatus is the DynamoDB item of one history row.
type ArchivedStatus struct {
	DamID             string   `dynamodbav:"damId"`
	CreatedAt         int64    `dynamodbav:"createdAt"`
	HistoryID         string   `dynamodbav:"historyId"`
	CurrentWaterLevel *float64 `dynamodbav:"currentWaterLevel,omitempty"`
	LevelUnit         string   `dynamodbav:"levelUnit"`
	MaxLevel          *float64 `dynamodbav:"maxLevel,omitempty"`
	MinLevel          *float64 `dynamodbav:"minLevel,omitempty"`
	InflowRate        *float64 `dynamodbav:"inflowRate,omitempty"`
	OutflowRate       *float64 `dynamodbav:"outflowRate,omitempty"`
	SpillwayDischarge *float64 `dynamodbav:"spillwayDischarge,omitempty"`
	OpenGates         int      `dynamodbav:"openGates"`
	Source            string   `dynamodbav:"source"`
	SensorID          string   `dynamodbav:"sensorId,omitempty"`
	PowerStatus       string   `dynamodbav:"powerStatus"`
}

func toArchived(h domain.DamStatusHistory) ArchivedStatus {
	open := 0
	for _, g := range h.GateStatus {
		if g.Status == "open" || g.PercentageOpen > 0 {
			open++
		}
	}
	return ArchivedStatus{
		DamID:             h.DamID,
		CreatedAt:         h.CreatedAt.UnixMilli(),
		HistoryID:         h.ID,
		CurrentWaterLevel: h.CurrentWaterLevel,
		LevelUnit:         h.LevelUnit,
		MaxLevel:          h.MaxLevel,
		MinLevel:          h.MinLevel,
		InflowRate:        h.InflowRate,
		OutflowRate:       h.OutflowRate,
		SpillwayDischarge: h.SpillwayDischarge,
		OpenGates:         open,
		Source:            h.Source,
		SensorID:          h.SensorID,
		PowerStatus:       h.PowerStatus,
	}
}

// Archive stores one history row.
func (a *TelemetryArchive) Archive(ctx context.Context, h domain.DamStatusHistory) error {
	item, err := attributevalue.MarshalMap(toArchived(h))
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	_, err = a.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(a.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}
