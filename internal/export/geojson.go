// Package export writes plans as GeoJSON for inspection in map and GIS tools.
package export

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"room-planner/internal/geometry"
	"room-planner/internal/planner"
	"room-planner/internal/rrtstar"
)

// FeatureCollection converts a plan into GeoJSON: one "path" LineString, one
// "route" LineString per route (property "room"), and, when includeTree is set,
// one "tree" LineString per tree edge.
func FeatureCollection(plan *planner.Plan, includeTree bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	path := geojson.NewFeature(lineString(plan.Path))
	path.Properties["kind"] = "path"
	path.Properties["cost"] = plan.Cost
	path.Properties["length"] = plan.Length
	fc.Append(path)

	for i, r := range plan.Routes {
		f := geojson.NewFeature(lineString(r.Points))
		f.Properties["kind"] = "route"
		f.Properties["index"] = i
		f.Properties["room"] = string(r.Room)
		fc.Append(f)
	}

	if includeTree && plan.Tree != nil {
		for _, f := range TreeFeatures(plan.Tree) {
			fc.Append(f)
		}
	}

	return fc
}

// TreeFeatures returns the tree edges as line features, parent first
func TreeFeatures(tree *rrtstar.Tree) []*geojson.Feature {
	edges := tree.Edges()
	features := make([]*geojson.Feature, 0, len(edges))
	for _, e := range edges {
		f := geojson.NewFeature(orb.LineString{e.V1, e.V2})
		f.Properties["kind"] = "tree"
		features = append(features, f)
	}
	return features
}

// WriteFile saves the plan's GeoJSON to filename
func WriteFile(plan *planner.Plan, includeTree bool, filename string) error {
	data, err := FeatureCollection(plan, includeTree).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal plan")
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %q", filename)
	}
	return nil
}

func lineString(points []geometry.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	copy(ls, points)
	return ls
}
