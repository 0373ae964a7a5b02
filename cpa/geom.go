// SPDX-License-Identifier: MIT
// Package: ivpbuild/cpa
//
// geom.go - planar angle and line helpers in the heading convention
// (0 = north, clockwise).

package cpa

import "math"

const degToRad = math.Pi / 180

// Angle360 maps any angle into [0, 360).
func Angle360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Angle180 maps any angle into (-180, 180].
func Angle180(deg float64) float64 {
	deg = Angle360(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// RelAng returns the heading from (xa,ya) to (xb,yb). Identical points
// yield 0. Axis-aligned directions are exact.
func RelAng(xa, ya, xb, yb float64) float64 {
	switch {
	case xa == xb && ya == yb:
		return 0
	case xa == xb && yb > ya:
		return 0
	case xa == xb:
		return 180
	case ya == yb && xb > xa:
		return 90
	case ya == yb:
		return 270
	}
	return Angle360(math.Atan2(xb-xa, yb-ya) / degToRad)
}

// RelBearing returns the bearing of (xb,yb) relative to a vessel at (xa,ya)
// steering heading, in [0, 360).
func RelBearing(xa, ya, heading, xb, yb float64) float64 {
	return Angle360(RelAng(xa, ya, xb, yb) - heading)
}

// ProjectPoint moves (x,y) dist meters along heading. Axis headings are exact.
func ProjectPoint(heading, dist, x, y float64) (float64, float64) {
	heading = Angle360(heading)
	switch heading {
	case 0:
		return x, y + dist
	case 90:
		return x + dist, y
	case 180:
		return x, y - dist
	case 270:
		return x - dist, y
	}
	rad := heading * degToRad
	return x + math.Sin(rad)*dist, y + math.Cos(rad)*dist
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// SpeedInHeading returns the component of a velocity (heading, speed) along
// the given reference heading.
func SpeedInHeading(heading, speed, ref float64) float64 {
	delta := Angle180(heading - ref)
	return speed * math.Cos(delta*degToRad)
}

// LinesCross intersects the infinite line through (x1,y1),(x2,y2) with the
// one through (x3,y3),(x4,y4). Parallel distinct lines do not cross;
// coincident lines report (x1,y1).
func LinesCross(x1, y1, x2, y2, x3, y3, x4, y4 float64) (ix, iy float64, ok bool) {
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-12 {
		// Parallel: coincident when (x3,y3) lies on the first line.
		cross := (x2-x1)*(y3-y1) - (y2-y1)*(x3-x1)
		if math.Abs(cross) < 1e-9 {
			return x1, y1, true
		}
		return 0, 0, false
	}
	a := x1*y2 - y1*x2
	b := x3*y4 - y3*x4
	ix = (a*(x3-x4) - (x1-x2)*b) / denom
	iy = (a*(y3-y4) - (y1-y2)*b) / denom
	return ix, iy, true
}
