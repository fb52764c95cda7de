// Package track reads and writes fix sequences as GeoJSON and reduces
// them to a compact path.
package track

import (
	"fmt"
	"io"
	"time"

	gpsmooth "github.com/milosgajdos/go-gpsmooth"
	"github.com/milosgajdos/go-gpsmooth/location"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature property names
const (
	PropAccuracy  = "Accuracy"
	PropElevation = "Elevation"
	PropSpeed     = "Speed"
	PropHeading   = "Heading"
	PropTime      = "Time"
)

// maxInputSize caps the size of a decoded document
const maxInputSize = 64 * 1024 * 1024

// Decode reads a GeoJSON FeatureCollection of Point features and returns its fixes.
// Every feature must carry an Accuracy property; Elevation, Speed, Heading
// and Time (RFC3339) are optional.
func Decode(r io.Reader) ([]location.Fix, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}

	if len(data) > maxInputSize {
		return nil, fmt.Errorf("GeoJSON input too large (max %d bytes)", maxInputSize)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	fixes := make([]location.Fix, 0, len(fc.Features))
	for i, f := range fc.Features {
		fix, err := FeatureFix(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		fixes = append(fixes, fix)
	}

	return fixes, nil
}

// FeatureFix converts a Point feature to a fix.
func FeatureFix(f *geojson.Feature) (location.Fix, error) {
	if f == nil || f.Geometry == nil {
		return location.Fix{}, fmt.Errorf("missing geometry: %w", gpsmooth.ErrInvalidInput)
	}

	p, ok := f.Geometry.(orb.Point)
	if !ok {
		return location.Fix{}, fmt.Errorf("geometry %s is not a point: %w", f.Geometry.GeoJSONType(), gpsmooth.ErrInvalidInput)
	}

	fix := location.Fix{
		Latitude:  p.Lat(),
		Longitude: p.Lon(),
	}

	var err error
	if fix.Accuracy, ok, err = number(f.Properties, PropAccuracy); err != nil {
		return location.Fix{}, err
	} else if !ok {
		return location.Fix{}, fmt.Errorf("missing %s: %w", PropAccuracy, gpsmooth.ErrInvalidInput)
	}

	if fix.Altitude, fix.HasAltitude, err = number(f.Properties, PropElevation); err != nil {
		return location.Fix{}, err
	}

	if fix.Speed, fix.HasSpeed, err = number(f.Properties, PropSpeed); err != nil {
		return location.Fix{}, err
	}

	if fix.Bearing, fix.HasBearing, err = number(f.Properties, PropHeading); err != nil {
		return location.Fix{}, err
	}

	if v, ok := f.Properties[PropTime]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return location.Fix{}, fmt.Errorf("%s is a %T: %w", PropTime, v, gpsmooth.ErrInvalidInput)
		}
		if fix.Time, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return location.Fix{}, fmt.Errorf("%s: %v: %w", PropTime, err, gpsmooth.ErrInvalidInput)
		}
	}

	return fix, nil
}

// number returns a numeric property and whether it was present
func number(props geojson.Properties, key string) (float64, bool, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	f, ok := v.(float64)
	if !ok {
		return 0, false, fmt.Errorf("%s is a %T: %w", key, v, gpsmooth.ErrInvalidInput)
	}

	return f, true, nil
}

// Feature converts a fix to a Point feature.
func Feature(fix location.Fix) *geojson.Feature {
	f := geojson.NewFeature(fix.Point())
	f.Properties[PropAccuracy] = fix.Accuracy

	if fix.HasAltitude {
		f.Properties[PropElevation] = fix.Altitude
	}

	if fix.HasSpeed {
		f.Properties[PropSpeed] = fix.Speed
	}

	if fix.HasBearing {
		f.Properties[PropHeading] = fix.Bearing
	}

	if !fix.Time.IsZero() {
		f.Properties[PropTime] = fix.Time.Format(time.RFC3339Nano)
	}

	return f
}

// LineString returns the fixes as a single LineString feature
func LineString(fixes []location.Fix) *geojson.Feature {
	ls := make(orb.LineString, len(fixes))
	for i, fix := range fixes {
		ls[i] = fix.Point()
	}

	f := geojson.NewFeature(ls)
	f.Properties["Length"] = Length(fixes)

	if len(fixes) > 0 {
		f.Properties["StartTime"] = fixes[0].Time.Format(time.RFC3339Nano)
		f.Properties["Duration"] = fixes[len(fixes)-1].Time.Sub(fixes[0].Time).Round(time.Second).Seconds()
	}

	return f
}

// Encode writes fixes as a GeoJSON FeatureCollection of Point features.
// If path is true a LineString feature of the whole track is appended.
func Encode(w io.Writer, fixes []location.Fix, path bool) error {
	fc := geojson.NewFeatureCollection()
	for _, fix := range fixes {
		fc.Append(Feature(fix))
	}

	if path && len(fixes) > 1 {
		fc.Append(LineString(fixes))
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}

	return nil
}
