package models

import "time"

// FeatureCount is the number of geotechnical measurements in one reading.
const FeatureCount = 13

// FeatureNames lists the measurements in wire order. The scoring engine
// receives them as positional arguments in exactly this order.
var FeatureNames = [FeatureCount]string{
	"rainfall",
	"depth_to_groundwater",
	"pore_water_pressure",
	"surface_runoff",
	"unit_weight",
	"cohesion",
	"internal_friction_angle",
	"slope_angle",
	"slope_height",
	"pore_water_pressure_ratio",
	"bench_height",
	"bench_width",
	"inter_ramp_angle",
}

// SensorReading represents a row in the 'sensor_readings' table: one
// timestamped snapshot of the 13 measurements, tied to a location.
type SensorReading struct {
	ID                     int64     `db:"id" json:"id"`
	LocationID             int64     `db:"location_id" json:"location_id"`
	Timestamp              time.Time `db:"timestamp" json:"timestamp"`
	Rainfall               float64   `db:"rainfall" json:"rainfall"`
	DepthToGroundwater     float64   `db:"depth_to_groundwater" json:"depth_to_groundwater"`
	PoreWaterPressure      float64   `db:"pore_water_pressure" json:"pore_water_pressure"`
	SurfaceRunoff          float64   `db:"surface_runoff" json:"surface_runoff"`
	UnitWeight             float64   `db:"unit_weight" json:"unit_weight"`
	Cohesion               float64   `db:"cohesion" json:"cohesion"`
	InternalFrictionAngle  float64   `db:"internal_friction_angle" json:"internal_friction_angle"`
	SlopeAngle             float64   `db:"slope_angle" json:"slope_angle"`
	SlopeHeight            float64   `db:"slope_height" json:"slope_height"`
	PoreWaterPressureRatio float64   `db:"pore_water_pressure_ratio" json:"pore_water_pressure_ratio"`
	BenchHeight            float64   `db:"bench_height" json:"bench_height"`
	BenchWidth             float64   `db:"bench_width" json:"bench_width"`
	InterRampAngle         float64   `db:"inter_ramp_angle" json:"inter_ramp_angle"`
}

// NewSensorReading maps a validated feature vector onto the named columns.
func NewSensorReading(locationID int64, features []float64, ts time.Time) *SensorReading {
	return &SensorReading{
		LocationID:             locationID,
		Timestamp:              ts,
		Rainfall:               features[0],
		DepthToGroundwater:     features[1],
		PoreWaterPressure:      features[2],
		SurfaceRunoff:          features[3],
		UnitWeight:             features[4],
		Cohesion:               features[5],
		InternalFrictionAngle:  features[6],
		SlopeAngle:             features[7],
		SlopeHeight:            features[8],
		PoreWaterPressureRatio: features[9],
		BenchHeight:            features[10],
		BenchWidth:             features[11],
		InterRampAngle:         features[12],
	}
}
