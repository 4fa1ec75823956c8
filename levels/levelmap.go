package levels

import (
	"fmt"
	"math"
	"strings"
)

const (
	// NodeGap is the vertical distance between two level nodes on the map.
	NodeGap = 100.0
	// PathAmplitude is how far the path winds left and right of centre.
	PathAmplitude = 60.0

	minVisibleLevels = 50
	visibleAhead     = 20
)

type NodeStatus int

const (
	Locked NodeStatus = iota
	Unlocked
	Completed
)

func (s NodeStatus) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case Completed:
		return "completed"
	default:
		return "locked"
	}
}

// Status classifies a level against the highest level the player may open.
func Status(level, highest int) NodeStatus {
	switch {
	case level < highest:
		return Completed
	case level == highest:
		return Unlocked
	default:
		return Locked
	}
}

// VisibleCount is how many nodes the map shows for a player whose highest
// unlocked level is highest.
func VisibleCount(highest int) int {
	return max(minVisibleLevels, highest+visibleAhead)
}

// NodeOffset is the horizontal displacement of a level node from the map centre.
func NodeOffset(level int) float64 {
	return math.Sin(float64(level)*0.8) * PathAmplitude
}

type Node struct {
	Level int
	X, Y  float64
}

// Layout places count nodes with level 1 at the bottom. midX is the map's
// horizontal centre and gap the vertical spacing between nodes.
func Layout(count int, midX, gap float64) []Node {
	if count <= 0 {
		return nil
	}
	nodes := make([]Node, count)
	for i := range nodes {
		level := i + 1
		nodes[i] = Node{
			Level: level,
			X:     midX + NodeOffset(level),
			Y:     float64(count-level)*gap + gap/2,
		}
	}
	return nodes
}

// Segment is one cubic Bézier between two consecutive nodes.
type Segment struct {
	X0, Y0, C1X, C1Y, C2X, C2Y, X1, Y1 float64
}

// At evaluates the curve at t in [0, 1].
func (s Segment) At(t float64) (float64, float64) {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return a*s.X0 + b*s.C1X + c*s.C2X + d*s.X1,
		a*s.Y0 + b*s.C1Y + c*s.C2Y + d*s.Y1
}

// Segments joins consecutive nodes with curves whose control points sit at the
// vertical midpoint, so the path leaves and enters every node vertically.
func Segments(nodes []Node) []Segment {
	if len(nodes) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		a, b := nodes[i-1], nodes[i]
		midY := (a.Y + b.Y) / 2
		out = append(out, Segment{
			X0: a.X, Y0: a.Y,
			C1X: a.X, C1Y: midY,
			C2X: b.X, C2Y: midY,
			X1: b.X, Y1: b.Y,
		})
	}
	return out
}

// Path renders the node chain as SVG path data.
func Path(nodes []Node) string {
	segs := Segments(nodes)
	if len(segs) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %.1f %.1f", segs[0].X0, segs[0].Y0)
	for _, s := range segs {
		fmt.Fprintf(&sb, " C %.1f %.1f, %.1f %.1f, %.1f %.1f", s.C1X, s.C1Y, s.C2X, s.C2Y, s.X1, s.Y1)
	}
	return sb.String()
}
