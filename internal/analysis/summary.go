// Package analysis computes post-hoc statistics over stored run
// trajectories: per-node displacement summaries and settling detection.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/softgrid/internal/softbody"
)

// AxisStats summarizes one displacement component across a trajectory.
type AxisStats struct {
	Mean   float64
	StdDev float64
	Max    float64
}

// NodeSummary summarizes how far one node strayed from its initial position.
type NodeSummary struct {
	Node    int
	X, Y, Z AxisStats
	// Dist summarizes the Euclidean displacement magnitude.
	Dist AxisStats
}

// SummarizeNode computes displacement statistics for one node over all
// frames, measured against the node's first-frame position.
func SummarizeNode(frames [][]softbody.Vec3, node int) (NodeSummary, error) {
	if len(frames) == 0 {
		return NodeSummary{}, fmt.Errorf("analysis: no frames")
	}
	if node < 0 || node >= len(frames[0]) {
		return NodeSummary{}, fmt.Errorf("analysis: node %d out of range [0,%d)", node, len(frames[0]))
	}

	rest := frames[0][node]
	dx := make([]float64, len(frames))
	dy := make([]float64, len(frames))
	dz := make([]float64, len(frames))
	dist := make([]float64, len(frames))

	for i, frame := range frames {
		d := frame[node].Sub(rest)
		dx[i], dy[i], dz[i] = d.X, d.Y, d.Z
		dist[i] = d.Length()
	}

	return NodeSummary{
		Node: node,
		X:    axisStats(dx),
		Y:    axisStats(dy),
		Z:    axisStats(dz),
		Dist: axisStats(dist),
	}, nil
}

// SummarizeRun reduces the whole trajectory to displacement statistics of
// the per-frame worst node.
func SummarizeRun(frames [][]softbody.Vec3) (AxisStats, error) {
	if len(frames) == 0 {
		return AxisStats{}, fmt.Errorf("analysis: no frames")
	}

	rest := frames[0]
	worst := make([]float64, len(frames))
	for i, frame := range frames {
		for j := range frame {
			if j >= len(rest) {
				break
			}
			if d := frame[j].Sub(rest[j]).Length(); d > worst[i] {
				worst[i] = d
			}
		}
	}
	return AxisStats{
		Mean:   stat.Mean(worst, nil),
		StdDev: stat.StdDev(worst, nil),
		Max:    floats.Max(worst),
	}, nil
}

// SettleTime returns the first timestamp after which every node's speed,
// estimated by finite differences between consecutive frames, stays under
// threshold for the rest of the run. Returns ok=false when the run never
// settles or is too short to difference.
func SettleTime(frames [][]softbody.Vec3, times []float64, threshold float64) (float64, bool) {
	if len(frames) < 2 || len(frames) != len(times) {
		return 0, false
	}

	settledFrom := -1
	for i := 1; i < len(frames); i++ {
		dt := times[i] - times[i-1]
		if dt <= 0 {
			return 0, false
		}

		calm := true
		for j := range frames[i] {
			speed := frames[i][j].Sub(frames[i-1][j]).Length() / dt
			if speed >= threshold {
				calm = false
				break
			}
		}

		if calm {
			if settledFrom < 0 {
				settledFrom = i
			}
		} else {
			settledFrom = -1
		}
	}

	if settledFrom < 0 {
		return 0, false
	}
	return times[settledFrom], true
}

// axisStats reduces one component series; Max is the largest magnitude.
func axisStats(vals []float64) AxisStats {
	absMax := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > absMax {
			absMax = a
		}
	}
	return AxisStats{
		Mean:   stat.Mean(vals, nil),
		StdDev: stat.StdDev(vals, nil),
		Max:    absMax,
	}
}
