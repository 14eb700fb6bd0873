package house

import (
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"room-planner/internal/geometry"
)

// Feature kinds understood by the loader, read from the "kind" property
const (
	FeatureHouse     = "house"
	FeatureWall      = "wall"
	FeatureDoor      = "door"
	FeatureFurniture = "furniture"
	FeatureRoom      = "room"
)

// LoadFile reads a house from a GeoJSON file
func LoadFile(path string) (*House, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read house file %q", path)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load house file %q", path)
	}
	return h, nil
}

// Load reads a house from a GeoJSON reader
func Load(r io.Reader) (*House, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read house")
	}
	return Parse(data)
}

// Parse converts a GeoJSON FeatureCollection into a House.
//
// Walls and doors are LineStrings; every consecutive coordinate pair becomes one
// segment. Furniture and rooms are Polygons; furniture is reduced to its bounding
// box. The optional "house" feature fixes the outer bounds, otherwise the bounds
// cover every feature.
func Parse(data []byte) (*House, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse GeoJSON")
	}

	h := &House{}
	var (
		haveBounds bool
		extent     orb.Bound
		haveExtent bool
	)

	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			return nil, errors.Errorf("feature %d has no geometry", i)
		}
		kind := feature.Properties.MustString("kind", "")

		switch kind {
		case FeatureHouse:
			h.Bounds = feature.Geometry.Bound()
			haveBounds = true
			continue

		case FeatureWall, FeatureDoor:
			ls, ok := feature.Geometry.(orb.LineString)
			if !ok {
				return nil, errors.Errorf("feature %d: %s must be a LineString, got %s", i, kind, feature.Geometry.GeoJSONType())
			}
			if len(ls) < 2 {
				return nil, errors.Errorf("feature %d: %s needs at least two coordinates", i, kind)
			}
			for j := 0; j < len(ls)-1; j++ {
				h.Walls = append(h.Walls, Wall{
					Segment: geometry.Segment{V1: ls[j], V2: ls[j+1]},
					Kind:    WallKind(kind),
				})
			}

		case FeatureFurniture:
			poly, ok := feature.Geometry.(orb.Polygon)
			if !ok {
				return nil, errors.Errorf("feature %d: furniture must be a Polygon, got %s", i, feature.Geometry.GeoJSONType())
			}
			b := poly.Bound()
			h.Furniture = append(h.Furniture, Box{
				X: b.Min[0],
				Y: b.Min[1],
				W: b.Max[0] - b.Min[0],
				H: b.Max[1] - b.Min[1],
			})

		case FeatureRoom:
			poly, ok := feature.Geometry.(orb.Polygon)
			if !ok {
				return nil, errors.Errorf("feature %d: room must be a Polygon, got %s", i, feature.Geometry.GeoJSONType())
			}
			id := feature.Properties.MustString("id", "")
			if id == "" {
				return nil, errors.Errorf("feature %d: room has no id", i)
			}
			h.Rooms = append(h.Rooms, Room{ID: RoomID(id), Polygon: poly})

		default:
			return nil, errors.Errorf("feature %d: unknown kind %q", i, kind)
		}

		if haveExtent {
			extent = extent.Union(feature.Geometry.Bound())
		} else {
			extent = feature.Geometry.Bound()
			haveExtent = true
		}
	}

	if !haveBounds {
		if !haveExtent {
			return nil, errors.New("house has no features")
		}
		h.Bounds = extent
	}

	return h, nil
}
