package geometry

import (
	"sort"
	"sync"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// parallelBuildThreshold is the span size above which the left subtree is
// built on its own goroutine
const parallelBuildThreshold = 1024

// BVHNode is a node in the Bounding Volume Hierarchy. Interior nodes hold two
// child nodes; leaves hold one or two primitives directly in the same slots.
// Right is nil for a single-primitive leaf.
type BVHNode struct {
	Box   core.AABB
	Left  Shape
	Right Shape
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent Hit calls.
type BVH struct {
	Root   *BVHNode
	shapes []Shape
}

// NewBVH constructs a BVH from a slice of shapes. The slice is copied and
// the caller's ordering is left untouched.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{
		Root:   buildBVH(shapesCopy, 0, len(shapesCopy)),
		shapes: shapesCopy,
	}
}

// buildBVH recursively builds a node over shapes[start:end] using the surface area heuristic
func buildBVH(shapes []Shape, start, end int) *BVHNode {
	boundingBox := shapes[start].BoundingBox()
	for i := start + 1; i < end; i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	span := end - start
	switch span {
	case 1:
		return &BVHNode{Box: boundingBox, Left: shapes[start]}
	case 2:
		return &BVHNode{Box: boundingBox, Left: shapes[start], Right: shapes[start+1]}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes[start:end], axis)

	mid := start + findSAHSplit(shapes[start:end], boundingBox)

	node := &BVHNode{Box: boundingBox}
	if span > parallelBuildThreshold {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			node.Left = buildBVH(shapes, start, mid)
		}()
		node.Right = buildBVH(shapes, mid, end)
		wg.Wait()
	} else {
		node.Left = buildBVH(shapes, start, mid)
		node.Right = buildBVH(shapes, mid, end)
	}

	return node
}

// findSAHSplit returns how many of the sorted shapes go to the left child.
// Cost of a split is 1 + SA_l/SA_p·N_l + SA_r/SA_p·N_r; the midpoint is used
// when no split in the interior of the range is usable.
func findSAHSplit(shapes []Shape, parent core.AABB) int {
	n := len(shapes)
	parentArea := parent.SurfaceArea()
	if parentArea <= 0 {
		return n / 2
	}

	// suffix[i] bounds shapes[i:]
	suffix := make([]core.AABB, n)
	suffix[n-1] = shapes[n-1].BoundingBox()
	for i := n - 2; i >= 0; i-- {
		suffix[i] = suffix[i+1].Union(shapes[i].BoundingBox())
	}

	bestSplit := -1
	bestCost := 0.0
	prefix := shapes[0].BoundingBox()
	for split := 1; split < n; split++ {
		leftArea := prefix.SurfaceArea()
		rightArea := suffix[split].SurfaceArea()
		cost := 1 + leftArea/parentArea*float64(split) + rightArea/parentArea*float64(n-split)
		if bestSplit < 0 || cost < bestCost {
			bestSplit = split
			bestCost = cost
		}
		prefix = prefix.Union(shapes[split].BoundingBox())
	}

	if bestSplit <= 0 || bestSplit >= n {
		return n / 2
	}
	return bestSplit
}

// sortShapesByAxis sorts shapes by the minimum of their bounding box along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Min.Axis(axis) < shapes[j].BoundingBox().Min.Axis(axis)
	})
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, tMin, tMax)
}

// Hit tests the node's box, then the left slot, then the right slot with tMax
// tightened to any left hit
func (node *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	hit, hitLeft := node.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = hit.T
	}

	if node.Right != nil {
		if rightHit, hitRight := node.Right.Hit(ray, tMin, tMax); hitRight {
			return rightHit, true
		}
	}

	return hit, hitLeft
}

// BoundingBox returns the node's cached box
func (node *BVHNode) BoundingBox() core.AABB {
	return node.Box
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.Box
}

// Len returns the number of primitives in the hierarchy
func (bvh *BVH) Len() int {
	return len(bvh.shapes)
}

// BVHStats summarizes the structure of a BVH
type BVHStats struct {
	Nodes      int
	Leaves     int
	Primitives int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the tree and collects structural statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	bvh.collectStats(bvh.Root, 0, &stats)
	if stats.Leaves > 0 {
		stats.AvgDepth /= float64(stats.Leaves)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	left, leftIsNode := node.Left.(*BVHNode)
	right, rightIsNode := node.Right.(*BVHNode)
	if !leftIsNode && !rightIsNode {
		stats.Leaves++
		stats.AvgDepth += float64(depth)
		stats.Primitives++
		if node.Right != nil {
			stats.Primitives++
		}
		return
	}

	if leftIsNode {
		bvh.collectStats(left, depth+1, stats)
	}
	if rightIsNode {
		bvh.collectStats(right, depth+1, stats)
	}
}
