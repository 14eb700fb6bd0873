package obstacle

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"room-planner/internal/geometry"
)

// boundsPadding widens every bounding box, relative to the largest coordinate
// magnitude (at least 1), so that zero-width boxes (axis-aligned or degenerate
// segments) are valid rectangles and touching boxes still overlap.
const boundsPadding = 1e-9

// segmentEntry wraps an obstacle segment for R-tree storage
type segmentEntry struct {
	index int
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *segmentEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// spatialIndex narrows collision queries down to nearby segments.
// Segments whose box cannot be built are kept aside and always returned.
type spatialIndex struct {
	tree      *rtreego.Rtree
	unindexed []int
}

func newSpatialIndex(segments []geometry.Segment) *spatialIndex {
	si := &spatialIndex{
		tree: rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
	}

	for i, seg := range segments {
		bbox, err := boundingBox(seg.V1, seg.V2)
		if err != nil {
			si.unindexed = append(si.unindexed, i)
			continue
		}
		si.tree.Insert(&segmentEntry{index: i, bbox: bbox})
	}

	return si
}

// query returns the indices of segments whose bounding box meets the box of p1-p2.
// ok is false when the query box is invalid and the caller has to scan everything.
func (si *spatialIndex) query(p1, p2 geometry.Point) (indices []int, ok bool) {
	bbox, err := boundingBox(p1, p2)
	if err != nil {
		return nil, false
	}

	results := si.tree.SearchIntersect(bbox)
	indices = make([]int, 0, len(results)+len(si.unindexed))
	for _, item := range results {
		indices = append(indices, item.(*segmentEntry).index)
	}
	indices = append(indices, si.unindexed...)
	return indices, true
}

// boundingBox computes the padded axis-aligned box spanned by two points
func boundingBox(p1, p2 geometry.Point) (rtreego.Rect, error) {
	minX, maxX := min(p1[0], p2[0]), max(p1[0], p2[0])
	minY, maxY := min(p1[1], p2[1]), max(p1[1], p2[1])

	scale := max(1, math.Abs(minX), math.Abs(maxX), math.Abs(minY), math.Abs(maxY))
	pad := boundsPadding * scale

	return rtreego.NewRect(
		rtreego.Point{minX - pad, minY - pad},
		[]float64{maxX - minX + 2*pad, maxY - minY + 2*pad},
	)
}
