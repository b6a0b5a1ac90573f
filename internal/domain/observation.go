package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// observationValidate reports missing fields by their JSON names.
var observationValidate = newObservationValidator()

func newObservationValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Observation is the wire form of a storm fix. Pointer fields distinguish an
// absent value from a zero one.
type Observation struct {
	StormID    string    `json:"storm_id"`
	ObservedAt time.Time `json:"observed_at"`

	CurrentLat *float64 `json:"current_lat" validate:"required"`
	CurrentLon *float64 `json:"current_lon" validate:"required"`
	PriorLat   *float64 `json:"prior_lat,omitempty"`
	PriorLon   *float64 `json:"prior_lon,omitempty"`

	MaxWindKmh         *float64 `json:"max_wind_speed" validate:"required"`
	CentralPressureHPa *float64 `json:"central_pressure" validate:"required"`
	WindShear          *float64 `json:"wind_shear" validate:"required"`
	SteeringU          *float64 `json:"steering_flow_u" validate:"required"`
	SteeringV          *float64 `json:"steering_flow_v" validate:"required"`

	PressureGradient       *float64 `json:"pressure_gradient,omitempty"`
	SeaSurfaceTempC        *float64 `json:"sea_surface_temp,omitempty"`
	UpperLevelDivergence   *float64 `json:"upper_level_divergence,omitempty"`
	RelativeHumidity       *float64 `json:"relative_humidity,omitempty"`
	AtmosphericInstability *float64 `json:"atmospheric_instability,omitempty"`
	SeasonFactor           *float64 `json:"season_factor,omitempty"`
	OceanHeatContent       *float64 `json:"ocean_heat_content,omitempty"`
	LandDistanceKm         *float64 `json:"land_distance,omitempty"`
	TimeOfDay              *float64 `json:"time_of_day,omitempty"`
}

// ParseObservation deserializes a RawEvent's value into an Observation. The
// message key stands in for a missing storm id and the message timestamp for
// a missing observation time.
func ParseObservation(raw RawEvent) (Observation, error) {
	var obs Observation
	if err := json.Unmarshal(raw.Value, &obs); err != nil {
		return Observation{}, fmt.Errorf("parse observation: %w: %w", ErrMalformedObservation, err)
	}
	if obs.StormID == "" {
		obs.StormID = string(raw.Key)
	}
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = raw.Timestamp
	}
	return obs, nil
}

// FeatureVector converts the observation into a normalized FeatureVector.
// An absent required field yields a *MissingFeatureError. The prior position
// defaults to the current one and the time of day to the UTC hour of
// ObservedAt; Coriolis and beta drift are always derived from latitude.
func (o Observation) FeatureVector() (FeatureVector, error) {
	if err := observationValidate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return FeatureVector{}, &MissingFeatureError{Field: verrs[0].Field()}
		}
		return FeatureVector{}, fmt.Errorf("validate observation: %w", err)
	}

	fv := FeatureVector{
		CurrentLat:             *o.CurrentLat,
		CurrentLon:             *o.CurrentLon,
		PriorLat:               orDefault(o.PriorLat, *o.CurrentLat),
		PriorLon:               orDefault(o.PriorLon, *o.CurrentLon),
		MaxWindKmh:             *o.MaxWindKmh,
		CentralPressureHPa:     *o.CentralPressureHPa,
		PressureGradient:       orDefault(o.PressureGradient, 0),
		SeaSurfaceTempC:        orDefault(o.SeaSurfaceTempC, 0),
		UpperLevelDivergence:   orDefault(o.UpperLevelDivergence, 0),
		WindShear:              *o.WindShear,
		RelativeHumidity:       orDefault(o.RelativeHumidity, 0),
		SteeringU:              *o.SteeringU,
		SteeringV:              *o.SteeringV,
		AtmosphericInstability: orDefault(o.AtmosphericInstability, 0),
		SeasonFactor:           orDefault(o.SeasonFactor, 0),
		OceanHeatContent:       orDefault(o.OceanHeatContent, 0),
		LandDistanceKm:         orDefault(o.LandDistanceKm, 0),
		TimeOfDay:              orDefault(o.TimeOfDay, float64(o.ObservedAt.UTC().Hour())),
	}
	fv = fv.Normalized()
	if err := fv.Validate(); err != nil {
		return FeatureVector{}, err
	}
	return fv, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
