package domain

import "time"

// Input types carry optional fields as pointers so that an omitted field can be
// told apart from a zero value when merging into a stored record.

type StatusSample struct {
	CurrentWaterLevel *float64     `json:"currentWaterLevel"`
	LevelUnit         *string      `json:"levelUnit" validate:"omitempty,oneof=m %"`
	MaxLevel          *float64     `json:"maxLevel"`
	MinLevel          *float64     `json:"minLevel"`
	InflowRate        *float64     `json:"inflowRate"`
	OutflowRate       *float64     `json:"outflowRate"`
	SpillwayDischarge *float64     `json:"spillwayDischarge"`
	GateStatus        []GateStatus `json:"gateStatus" validate:"omitempty,dive"`
	Source            *string      `json:"source" validate:"omitempty,oneof=sensor manual"`
	SensorID          *string      `json:"sensorId"`
	PowerStatus       *string      `json:"powerStatus" validate:"omitempty,oneof=ok low offline"`
	IsActive          *bool        `json:"isActive"`
	Status            *string      `json:"status"`
	LastSyncAt        *time.Time   `json:"lastSyncAt"`
}

type StateInput struct {
	Name string `json:"name" validate:"required"`
}

type RiverInput struct {
	Name    string `json:"name" validate:"required"`
	StateID string `json:"stateId"`
}

// DamInput is used both for creating a dam and for patching its core fields.
type DamInput struct {
	Name             *string      `json:"name"`
	RiverID          *string      `json:"riverId"`
	Coordinates      *Coordinates `json:"coordinates"`
	DamType          *string      `json:"damType"`
	ConstructionYear *string      `json:"constructionYear"`
	Operator         *string      `json:"operator"`
	MaxStorage       *float64     `json:"maxStorage"`
	LiveStorage      *float64     `json:"liveStorage"`
	DeadStorage      *float64     `json:"deadStorage"`
	CatchmentArea    *string      `json:"catchmentArea"`
	SurfaceArea      *string      `json:"surfaceArea"`
	Height           *string      `json:"height"`
	Length           *string      `json:"length"`
}

type SafetyInput struct {
	FloodRiskLevel   *string           `json:"floodRiskLevel" validate:"omitempty,oneof=Green Yellow Red"`
	SeepageReport    *string           `json:"seepageReport"`
	StructuralHealth *StructuralHealth `json:"structuralHealth"`
	EarthquakeZone   *string           `json:"earthquakeZone"`
	Maintenance      *Maintenance      `json:"maintenance"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
}

type SensorInput struct {
	DamID         *string    `json:"damId"`
	SensorID      *string    `json:"sensorId"`
	Type          *string    `json:"type" validate:"omitempty,oneof=level flow seepage vibration weather"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active inactive faulty"`
	BatteryStatus *string    `json:"batteryStatus" validate:"omitempty,oneof=good low critical"`
	LastSync      *time.Time `json:"lastSync"`
	LastReading   *float64   `json:"lastReading"`
	Unit          *string    `json:"unit"`
}

type SupportingInfoInput struct {
	Type        *string `json:"type" validate:"omitempty,oneof=guideline publicSpot prohibitedRegion"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	DangerLevel *string `json:"dangerLevel"`
}

type WaterUsageInput struct {
	DamID             *string  `json:"damId"`
	Irrigation        *float64 `json:"irrigation"`
	Drinking          *float64 `json:"drinking"`
	Industrial        *float64 `json:"industrial"`
	Hydropower        *float64 `json:"hydropower"`
	EvaporationLoss   *float64 `json:"evaporationLoss"`
	EnvironmentalFlow *float64 `json:"environmentalFlow"`
	FarmingSupport    *float64 `json:"farmingSupport"`
}

type FeatureInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof='Dam Management' Monitoring 'Safety & Alerts' 'Admin & Reports'"`
	Status      *string `json:"status" validate:"omitempty,oneof=Active Planned Disabled"`
	AdminOnly   *bool   `json:"adminOnly"`
}

type RegisterInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Password string `json:"password" form:"password"`
	Mobile   string `json:"mobile" form:"mobile"`
	Place    string `json:"place" form:"place"`
	State    string `json:"state" form:"state"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin govt user"`
}
