// SPDX-License-Identifier: MIT
// Package: ivpbuild/cpa
//
// engine.go - the CPA engine.
//
// Design:
//   • New precomputes the contact-only quadratic terms and the contact's
//     heading line; evaluation only adds ownship terms.
//   • Equal course and speed short-circuits to the present range with zero
//     closure, avoiding a zero quadratic coefficient.

package cpa

import "math"

const (
	// roc sweep horizon used by MinMaxROC, seconds.
	sweepTol = 60.0
	// length of the projected heading lines used by the crossing tests.
	lineLen = 100.0
	// maximum angular error, degrees, for a crossing point to count as ahead.
	aheadTol = 10.0
)

// Engine evaluates CPA between a fixed contact and ownship position.
type Engine struct {
	cnLat, cnLon, cnCrs, cnSpd float64
	osLat, osLon               float64

	cgamCN, sgamCN float64
	k2, k1, k0     float64

	rangeNow float64
	bearing  float64

	cnx2, cny2    float64
	osOnContact   bool
	osOnBowline   bool
	osOnSternline bool
}

// New builds an engine for a contact at (cnLat, cnLon) on course cnCrs at
// speed cnSpd, and ownship at (osLat, osLon). Negative speeds are clamped
// to zero and the course is normalized to [0, 360).
func New(cnLat, cnLon, cnCrs, cnSpd, osLat, osLon float64) *Engine {
	e := &Engine{
		cnLat: cnLat,
		cnLon: cnLon,
		cnCrs: Angle360(cnCrs),
		cnSpd: math.Max(cnSpd, 0),
		osLat: osLat,
		osLon: osLon,
	}
	e.setStatic()
	return e
}

func (e *Engine) setStatic() {
	gam := e.cnCrs * degToRad
	e.cgamCN, e.sgamCN = math.Cos(gam), math.Sin(gam)

	e.k2 = e.cgamCN*e.cgamCN*e.cnSpd*e.cnSpd + e.sgamCN*e.sgamCN*e.cnSpd*e.cnSpd

	e.k1 = -2 * e.osLat * e.cgamCN * e.cnSpd
	e.k1 += -2 * e.osLon * e.sgamCN * e.cnSpd
	e.k1 += 2 * e.cnLat * e.cgamCN * e.cnSpd
	e.k1 += 2 * e.cnLon * e.sgamCN * e.cnSpd

	dLat, dLon := e.osLat-e.cnLat, e.osLon-e.cnLon
	e.k0 = dLat*dLat + dLon*dLon

	e.rangeNow = Dist(e.osLon, e.osLat, e.cnLon, e.cnLat)
	e.bearing = RelAng(e.osLon, e.osLat, e.cnLon, e.cnLat)
	e.cnx2, e.cny2 = ProjectPoint(e.cnCrs, lineLen, e.cnLon, e.cnLat)

	e.osOnContact = e.osLon == e.cnLon && e.osLat == e.cnLat
	angCnToOs := RelAng(e.cnLon, e.cnLat, e.osLon, e.osLat)
	if !e.osOnContact {
		e.osOnBowline = angCnToOs == e.cnCrs
		e.osOnSternline = !e.osOnBowline && angCnToOs == Angle360(e.cnCrs-180)
	}
}

// Range returns the present distance between ownship and contact.
func (e *Engine) Range() float64 { return e.rangeNow }

// BearingToContact returns the absolute heading from ownship to the contact.
func (e *Engine) BearingToContact() float64 { return e.bearing }

// ContactCourse returns the normalized contact course.
func (e *Engine) ContactCourse() float64 { return e.cnCrs }

// ContactSpeed returns the (non-negative) contact speed.
func (e *Engine) ContactSpeed() float64 { return e.cnSpd }

// ownTerms returns k2 and k1 including the ownship contribution.
func (e *Engine) ownTerms(osCrs, osSpd float64) (k2, k1 float64) {
	gam := osCrs * degToRad
	c, s := math.Cos(gam), math.Sin(gam)

	k2 = e.k2
	k2 += c * c * osSpd * osSpd
	k2 += s * s * osSpd * osSpd
	k2 += -2 * c * osSpd * e.cgamCN * e.cnSpd
	k2 += -2 * s * osSpd * e.sgamCN * e.cnSpd

	k1 = e.k1
	k1 += 2 * c * osSpd * e.osLat
	k1 += 2 * s * osSpd * e.osLon
	k1 += -2 * c * osSpd * e.cnLat
	k1 += -2 * s * osSpd * e.cnLon
	return k2, k1
}

// EvalCPA returns the closest approach over the next tol seconds when
// ownship holds course osCrs at speed osSpd, and the rate of closure.
// Complexity: O(1).
func (e *Engine) EvalCPA(osCrs, osSpd, tol float64) (dist, roc float64) {
	osCrs = Angle360(osCrs)
	if osCrs == e.cnCrs && osSpd == e.cnSpd {
		return math.Sqrt(e.k0), 0
	}
	k2, k1 := e.ownTerms(osCrs, osSpd)
	minT := 0.0
	if k2 != 0 {
		minT = -k1 / (2 * k2)
	}
	if minT <= 0 {
		return math.Sqrt(e.k0), -k1
	}
	if minT >= tol {
		minT = tol
	}
	sq := k2*minT*minT + k1*minT + e.k0
	if sq < 0 {
		sq = 0
	}
	return math.Sqrt(sq), -k1
}

// EvalROC returns the rate of closure for a candidate course and speed.
func (e *Engine) EvalROC(osCrs, osSpd float64) float64 {
	osCrs = Angle360(osCrs)
	if osCrs == e.cnCrs && osSpd == e.cnSpd {
		return 0
	}
	_, k1 := e.ownTerms(osCrs, osSpd)
	return -k1
}

// MinMaxROC sweeps clicks headings evenly over [0, 360) at the given speed
// and returns the smallest and largest closure rates and the heading of the
// largest. A non-positive clicks count sweeps 360 headings.
// Complexity: O(clicks).
func (e *Engine) MinMaxROC(speed float64, clicks int) (minROC, maxROC, maxHeading float64) {
	if clicks <= 0 {
		clicks = 360
	}
	step := 360.0 / float64(clicks)
	for i := 0; i < clicks; i++ {
		h := float64(i) * step
		_, roc := e.EvalCPA(h, speed, sweepTol)
		if i == 0 || roc > maxROC {
			maxROC, maxHeading = roc, h
		}
		if i == 0 || roc < minROC {
			minROC = roc
		}
	}
	return minROC, maxROC, maxHeading
}

// CrossesLines reports whether ownship's track on osCrs intersects the
// contact's track line.
func (e *Engine) CrossesLines(osCrs float64) bool {
	osCrs = Angle360(osCrs)
	delta := Angle360(osCrs - e.cnCrs)
	if delta != 0 && delta != 180 {
		return true
	}
	if e.osOnContact {
		return true
	}
	ang := RelAng(e.osLon, e.osLat, e.cnLon, e.cnLat)
	return ang == osCrs || ang == Angle360(osCrs-180)
}

// crossPoint intersects ownship's heading line with the contact's and
// reports whether the intersection lies ahead of ownship.
func (e *Engine) crossPoint(osCrs float64) (ix, iy float64, ok bool) {
	x2, y2 := ProjectPoint(osCrs, lineLen, e.osLon, e.osLat)
	ix, iy, ok = LinesCross(e.osLon, e.osLat, x2, y2, e.cnLon, e.cnLat, e.cnx2, e.cny2)
	if !ok {
		return 0, 0, false
	}
	ang := RelAng(e.osLon, e.osLat, ix, iy)
	if math.Abs(Angle180(osCrs-ang)) > aheadTol {
		return 0, 0, false
	}
	return ix, iy, true
}

// crossTimes returns the distances and travel times to the crossing point
// and whether the point lies ahead of the contact.
func (e *Engine) crossTimes(ix, iy, osSpd float64) (cnDist, osTime, cnTime float64, foreNow bool) {
	osDist := Dist(e.osLon, e.osLat, ix, iy)
	cnDist = Dist(e.cnLon, e.cnLat, ix, iy)
	osTime = osDist / osSpd
	if e.cnSpd > 0 {
		cnTime = cnDist / e.cnSpd
	}
	ang := RelAng(e.cnLon, e.cnLat, ix, iy)
	foreNow = math.Abs(Angle180(e.cnCrs-ang)) < aheadTol
	return cnDist, osTime, cnTime, foreNow
}

// CrossesBowDist reports whether ownship on (osCrs, osSpd) crosses ahead of
// the contact, and the contact's remaining distance to the crossing point
// at that moment (-1 when it does not cross).
func (e *Engine) CrossesBowDist(osCrs, osSpd float64) (bool, float64) {
	if e.osOnContact {
		return true, 0
	}
	if e.osOnBowline {
		return true, e.rangeNow
	}
	if osSpd == 0 {
		return false, -1
	}
	ix, iy, ok := e.crossPoint(Angle360(osCrs))
	if !ok {
		return false, -1
	}
	cnDist, osTime, cnTime, foreNow := e.crossTimes(ix, iy, osSpd)
	if e.cnSpd <= 0 {
		return true, cnDist
	}
	if !foreNow || cnTime < osTime {
		return false, -1
	}
	return true, cnDist - osTime*e.cnSpd
}

// CrossesBow reports whether ownship crosses the contact's bow.
func (e *Engine) CrossesBow(osCrs, osSpd float64) bool {
	ok, _ := e.CrossesBowDist(osCrs, osSpd)
	return ok
}

// CrossesSternDist reports whether ownship crosses behind the contact, and
// the contact's distance past the crossing point at that moment (-1 when
// it does not cross).
func (e *Engine) CrossesSternDist(osCrs, osSpd float64) (bool, float64) {
	if e.osOnContact {
		return true, 0
	}
	if e.osOnSternline {
		return true, e.rangeNow
	}
	if osSpd == 0 {
		return false, -1
	}
	ix, iy, ok := e.crossPoint(Angle360(osCrs))
	if !ok {
		return false, -1
	}
	cnDist, osTime, cnTime, foreNow := e.crossTimes(ix, iy, osSpd)
	if e.cnSpd <= 0 {
		return true, cnDist
	}
	if foreNow && osTime < cnTime {
		return false, -1
	}
	travelled := osTime * e.cnSpd
	if foreNow {
		return true, travelled - cnDist
	}
	return true, cnDist + travelled
}

// CrossesStern reports whether ownship crosses the contact's stern.
func (e *Engine) CrossesStern(osCrs, osSpd float64) bool {
	ok, _ := e.CrossesSternDist(osCrs, osSpd)
	return ok
}

// CrossesBowOrStern reports whether ownship's track crosses the contact's
// track line ahead of ownship.
func (e *Engine) CrossesBowOrStern(osCrs, osSpd float64) bool {
	if e.osOnContact || e.osOnBowline || e.osOnSternline {
		return true
	}
	if osSpd == 0 {
		return false
	}
	_, _, ok := e.crossPoint(Angle360(osCrs))
	return ok
}

// TurnsRight reports whether heading lies clockwise of present within 180.
func (e *Engine) TurnsRight(present, heading float64) bool {
	d := Angle360(heading - present)
	return d > 0 && d < 180
}

// TurnsLeft reports whether heading lies counter-clockwise of present.
func (e *Engine) TurnsLeft(present, heading float64) bool {
	return Angle360(heading-present) > 180
}

// PassesContact reports whether ownship on (osCrs, osSpd) will move from one
// side of the contact's beam to the other.
func (e *Engine) PassesContact(osCrs, osSpd float64) bool {
	fore, aft := e.ForeOfContact(), e.AftOfContact()
	if fore && aft {
		return true
	}
	along := SpeedInHeading(osCrs, osSpd, e.cnCrs)
	if aft {
		return along > e.cnSpd
	}
	return along < e.cnSpd
}

// PassesContactPort reports whether ownship passes the contact on the
// contact's port side.
func (e *Engine) PassesContactPort(osCrs, osSpd float64) bool {
	if e.osOnContact || !e.PassesContact(osCrs, osSpd) {
		return false
	}
	fore, aft := e.ForeOfContact(), e.AftOfContact()
	port, stbd := e.PortOfContact(), e.StarboardOfContact()
	if port && stbd {
		rel := RelBearing(e.osLon, e.osLat, Angle360(osCrs), e.cnLon, e.cnLat)
		if fore {
			return rel >= 180
		}
		return rel < 180
	}
	switch {
	case fore && aft:
		return port
	case aft && port:
		return !e.CrossesStern(osCrs, osSpd)
	case aft && stbd:
		return e.CrossesStern(osCrs, osSpd)
	case fore && port:
		return !e.CrossesBow(osCrs, osSpd)
	case fore && stbd:
		return e.CrossesBow(osCrs, osSpd)
	}
	return false
}

// PassesContactStarboard reports whether ownship passes the contact on the
// contact's starboard side.
func (e *Engine) PassesContactStarboard(osCrs, osSpd float64) bool {
	if e.osOnContact || !e.PassesContact(osCrs, osSpd) {
		return false
	}
	return !e.PassesContactPort(osCrs, osSpd)
}

// relBearingOfOwnship is ownship's bearing relative to the contact's heading.
func (e *Engine) relBearingOfOwnship() float64 {
	return RelBearing(e.cnLon, e.cnLat, e.cnCrs, e.osLon, e.osLat)
}

// ForeOfContact reports whether ownship is at or ahead of the contact's beam.
func (e *Engine) ForeOfContact() bool {
	if e.osOnContact {
		return false
	}
	b := e.relBearingOfOwnship()
	return b <= 90 || b >= 270
}

// AftOfContact reports whether ownship is at or behind the contact's beam.
func (e *Engine) AftOfContact() bool {
	if e.osOnContact {
		return false
	}
	b := e.relBearingOfOwnship()
	return b >= 90 && b <= 270
}

// PortOfContact reports whether ownship is on the contact's port side
// (dead ahead counts as both sides).
func (e *Engine) PortOfContact() bool {
	if e.osOnContact {
		return false
	}
	b := e.relBearingOfOwnship()
	return b >= 180 || b == 0
}

// StarboardOfContact reports whether ownship is on the contact's starboard side.
func (e *Engine) StarboardOfContact() bool {
	if e.osOnContact {
		return false
	}
	return e.relBearingOfOwnship() <= 180
}
