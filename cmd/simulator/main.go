package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

const (
	maxLevel = 100.0
	minLevel = 0.0
)

// nextSample walks the level by up to +-1.5 m and derives flows from it.
func nextSample(rng *rand.Rand, level float64) domain.StatusSample {
	level = math.Max(minLevel, math.Min(maxLevel, level+(rng.Float64()*3-1.5)))
	inflow := 200 + rng.Float64()*100
	outflow := inflow * (0.6 + level/maxLevel*0.5)
	var spill float64
	if level > 0.9*maxLevel {
		spill = (level - 0.9*maxLevel) * 40
	}
	openPct := math.Round(math.Min(100, level/maxLevel*60))

	round := func(v float64) *float64 { r := math.Round(v*100) / 100; return &r }
	unit, src, power, sensor := "m", "sensor", "ok", "sim-level-01"
	hi, lo := maxLevel, minLevel
	return domain.StatusSample{
		CurrentWaterLevel: round(level),
		LevelUnit:         &unit,
		MaxLevel:          &hi,
		MinLevel:          &lo,
		InflowRate:        round(inflow),
		OutflowRate:       round(outflow),
		SpillwayDischarge: round(spill),
		GateStatus: []domain.GateStatus{
			{GateNumber: 1, Status: "open", PercentageOpen: openPct},
			{GateNumber: 2, Status: "closed"},
		},
		Source:      &src,
		SensorID:    &sensor,
		PowerStatus: &power,
	}
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	damIDs := config.SimDamIDs()
	if len(damIDs) == 0 {
		log.Fatal().Msg("SIM_DAM_IDS is empty")
	}

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID(config.MQTTClientID() + "-sim")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	levels := make(map[string]float64, len(damIDs))
	for _, id := range damIDs {
		levels[id] = 40 + rng.Float64()*20
	}

	for i := 0; i < config.SimSamples(); i++ {
		for _, id := range damIDs {
			s := nextSample(rng, levels[id])
			levels[id] = *s.CurrentWaterLevel
			payload, err := json.Marshal(s)
			if err != nil {
				log.Error().Err(err).Msg("encode sample")
				continue
			}
			token := client.Publish(fmt.Sprintf("dams/%s/status", id), 1, false, payload)
			if token.Wait() && token.Error() != nil {
				log.Error().Err(token.Error()).Str("dam_id", id).Msg("publish failed")
			}
		}
		time.Sleep(config.SimInterval())
	}
	log.Info().Int("samples", config.SimSamples()).Strs("dams", damIDs).Msg("simulation done")
}
