// Package domain models tropical cyclone observations and the forecasts
// derived from them.
//
// # Data Source
//
// Observations arrive as flat JSON on the Kafka source topic, one message per
// storm fix. The upstream tracker publishes the storm's current position and
// environmental diagnostics; the forecaster answers with a [ForecastResult] on
// the sink topic, keyed by storm id.
//
// # Units
//
//	Position:          decimal degrees, WGS-84. Latitude is clipped to [-90, 90],
//	                   longitude wrapped to [-180, 180].
//	max_wind_speed:    km/h, 1-minute sustained.
//	central_pressure:  hPa.
//	wind_shear:        m/s, 200-850 hPa bulk shear. Clamped to [0, 30] during evolution.
//	steering_flow_u/v: m/s, deep-layer mean wind (u east, v north).
//	time_of_day:       UTC hour in [0, 24).
//
// # Intensity Scale
//
// Categories follow the Saffir-Simpson scale with the two sub-hurricane
// stages added, thresholds in km/h:
//
//	tropical_depression  < 63
//	tropical_storm       63-118
//	category_1           119-153
//	category_2           154-177
//	category_3           178-208
//	category_4           209-251
//	category_5           >= 252
//
// # Threat Levels
//
// Coastal threat is a four-level scale (low, moderate, high, extreme) derived
// from the intensity ordinal (1-7), shifted by one level for tight (< 100 km)
// or loose (> 200 km) position uncertainty.
//
// # Derived Features
//
// The Coriolis parameter f = 2*Omega*sin(lat) with Omega = 7.272e-5 rad/s and
// the beta drift (f * 0.1) are recomputed from latitude and are never taken
// from the wire.
package domain
