package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGovt  Role = "govt"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGovt, RoleUser:
		return true
	}
	return false
}

type State struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type River struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StateID   string    `db:"state_id" json:"stateId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Dam is the aggregation root for status, safety, sensors, supporting info and usage.
// StateName and RiverName are caches of the parent names, refreshed on rename.
type Dam struct {
	ID               string      `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	StateID          string      `db:"state_id" json:"stateId"`
	StateName        string      `db:"state_name" json:"stateName"`
	RiverID          string      `db:"river_id" json:"riverId"`
	RiverName        string      `db:"river_name" json:"riverName"`
	Coordinates      Coordinates `db:"coordinates" json:"coordinates"`
	DamType          string      `db:"dam_type" json:"damType"`
	ConstructionYear string      `db:"construction_year" json:"constructionYear"`
	Operator         string      `db:"operator" json:"operator"`
	MaxStorage       *float64    `db:"max_storage" json:"maxStorage"`
	LiveStorage      *float64    `db:"live_storage" json:"liveStorage"`
	DeadStorage      *float64    `db:"dead_storage" json:"deadStorage"`
	CatchmentArea    string      `db:"catchment_area" json:"catchmentArea"`
	SurfaceArea      string      `db:"surface_area" json:"surfaceArea"`
	Height           string      `db:"height" json:"height"`
	Length           string      `db:"length" json:"length"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}

type GateStatus struct {
	GateNumber     int     `json:"gateNumber" validate:"required"`
	Status         string  `json:"status" validate:"omitempty,oneof=open closed"`
	PercentageOpen float64 `json:"percentageOpen" validate:"gte=0,lte=100"`
}

// DamStatus is the current reading of a dam. There is one row per dam.
type DamStatus struct {
	DamID             string     `db:"dam_id" json:"damId"`
	CurrentWaterLevel *float64   `db:"current_water_level" json:"currentWaterLevel"`
	LevelUnit         string     `db:"level_unit" json:"levelUnit"`
	MaxLevel          *float64   `db:"max_level" json:"maxLevel"`
	MinLevel          *float64   `db:"min_level" json:"minLevel"`
	InflowRate        *float64   `db:"inflow_rate" json:"inflowRate"`
	OutflowRate       *float64   `db:"outflow_rate" json:"outflowRate"`
	SpillwayDischarge *float64   `db:"spillway_discharge" json:"spillwayDischarge"`
	GateStatus        Gates      `db:"gate_status" json:"gateStatus"`
	Source            string     `db:"source" json:"source"`
	SensorID          string     `db:"sensor_id" json:"sensorId"`
	PowerStatus       string     `db:"power_status" json:"powerStatus"`
	IsActive          *bool      `db:"is_active" json:"isActive,omitempty"`
	Status            string     `db:"status" json:"status,omitempty"`
	LastSyncAt        *time.Time `db:"last_sync_at" json:"lastSyncAt"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`

	Dam *Dam `db:"-" json:"dam,omitempty"`
}

// DamStatusHistory is an immutable copy of a status write.
type DamStatusHistory struct {
	ID string `db:"id" json:"id"`
	DamStatus
}

type StructuralHealth struct {
	Cracks    string `json:"cracks"`
	Vibration string `json:"vibration"`
	Tilt      string `json:"tilt"`
}

type Maintenance struct {
	LastInspection *time.Time `json:"lastInspection"`
	NextInspection *time.Time `json:"nextInspection"`
	ReportFile     string     `json:"reportFile"`
}

type EmergencyContact struct {
	AuthorityName string `json:"authorityName"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

type FloodRisk string

const (
	FloodRiskGreen  FloodRisk = "Green"
	FloodRiskYellow FloodRisk = "Yellow"
	FloodRiskRed    FloodRisk = "Red"
)

type Safety struct {
	ID               string                     `db:"id" json:"id"`
	DamID            string                     `db:"dam_id" json:"damId"`
	FloodRiskLevel   FloodRisk                  `db:"flood_risk_level" json:"floodRiskLevel"`
	SeepageReport    string                     `db:"seepage_report" json:"seepageReport"`
	StructuralHealth JSONText[StructuralHealth] `db:"structural_health" json:"structuralHealth"`
	EarthquakeZone   string                     `db:"earthquake_zone" json:"earthquakeZone"`
	Maintenance      JSONText[Maintenance]      `db:"maintenance" json:"maintenance"`
	EmergencyContact JSONText[EmergencyContact] `db:"emergency_contact" json:"emergencyContact"`
	CreatedAt        time.Time                  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time                  `db:"updated_at" json:"updatedAt"`
}

type Sensor struct {
	ID            string    `db:"id" json:"id"`
	DamID         string    `db:"dam_id" json:"damId"`
	SensorID      string    `db:"sensor_id" json:"sensorId"`
	Type          string    `db:"type" json:"type"`
	Status        string    `db:"status" json:"status"`
	BatteryStatus string    `db:"battery_status" json:"batteryStatus"`
	LastSync      time.Time `db:"last_sync" json:"lastSync"`
	LastReading   float64   `db:"last_reading" json:"lastReading"`
	Unit          string    `db:"unit" json:"unit"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

type SupportingInfo struct {
	ID          string    `db:"id" json:"id"`
	DamID       string    `db:"dam_id" json:"damId"`
	Type        string    `db:"type" json:"type"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	DangerLevel string    `db:"danger_level" json:"dangerLevel"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type WaterUsage struct {
	ID                string    `db:"id" json:"id"`
	DamID             string    `db:"dam_id" json:"damId"`
	Irrigation        float64   `db:"irrigation" json:"irrigation"`
	Drinking          float64   `db:"drinking" json:"drinking"`
	Industrial        float64   `db:"industrial" json:"industrial"`
	Hydropower        float64   `db:"hydropower" json:"hydropower"`
	EvaporationLoss   float64   `db:"evaporation_loss" json:"evaporationLoss"`
	EnvironmentalFlow float64   `db:"environmental_flow" json:"environmentalFlow"`
	FarmingSupport    float64   `db:"farming_support" json:"farmingSupport"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// UsageTotals sums usage across a set of dams.
type UsageTotals struct {
	Irrigation        float64 `json:"irrigation"`
	Drinking          float64 `json:"drinking"`
	Industrial        float64 `json:"industrial"`
	Hydropower        float64 `json:"hydropower"`
	EvaporationLoss   float64 `json:"evaporationLoss"`
	EnvironmentalFlow float64 `json:"environmentalFlow"`
	FarmingSupport    float64 `json:"farmingSupport"`
}

func (t *UsageTotals) Add(u WaterUsage) {
	t.Irrigation += u.Irrigation
	t.Drinking += u.Drinking
	t.Industrial += u.Industrial
	t.Hydropower += u.Hydropower
	t.EvaporationLoss += u.EvaporationLoss
	t.EnvironmentalFlow += u.EnvironmentalFlow
	t.FarmingSupport += u.FarmingSupport
}

type Feature struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Status      string    `db:"status" json:"status"`
	AdminOnly   bool      `db:"admin_only" json:"adminOnly"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Mobile       string    `db:"mobile" json:"mobile"`
	Place        string    `db:"place" json:"place"`
	State        string    `db:"state" json:"state"`
	Role         Role      `db:"role" json:"role"`
	ProfileImage *string   `db:"profile_image" json:"profileImage"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// DamOverview bundles a dam with its latest reading and usage for dashboards.
type DamOverview struct {
	Dam          Dam         `json:"dam"`
	LatestStatus *DamStatus  `json:"latestStatus"`
	Usage        *WaterUsage `json:"usage"`
}
