package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

// IngestService applies telemetry received over MQTT.
type IngestService struct {
	status *StatusRecorder
}

// DamIDFromTopic extracts <damId> from "dams/<damId>/status".
func DamIDFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "dams" || parts[2] != "status" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// FromMQTT decodes a status sample and writes it as the dam's current status.
func (s *IngestService) FromMQTT(ctx context.Context, topic string, payload []byte) (*domain.DamStatus, error) {
	damID, ok := DamIDFromTopic(topic)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("unexpected topic %q", topic))
	}
	var sample domain.StatusSample
	if err := json.Unmarshal(payload, &sample); err != nil {
		return nil, apperr.Validation(fmt.Sprintf("decode status payload: %v", err))
	}
	if sample.Source == nil {
		src := "sensor"
		sample.Source = &src
	}
	return s.status.SetCurrentStatus(ctx, damID, sample)
}
