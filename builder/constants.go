// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// constants.go - function kinds, method names and job defaults.

package builder

// Function kinds accepted in job files.
const (
	KindZAICPeak   = "zaic_peak"
	KindZAICLEQ    = "zaic_leq"
	KindZAICHEQ    = "zaic_heq"
	KindZAICVector = "zaic_vector"
	KindAOF        = "aof"
)

// Method names prefix errors with the stage that raised them.
const (
	MethodLoadJob       = "LoadJob"
	MethodBuild         = "Build"
	MethodBuildFunction = "BuildFunction"
	MethodPeak          = "ZAICPeak"
	MethodThreshold     = "ZAICThreshold"
	MethodVector        = "ZAICVector"
	MethodAOF           = "AOF"
)

// DefaultPWT is the priority weight of a job that names none.
const DefaultPWT = 100.0

// DefaultRelevance scales the priority weight of a job that names none.
const DefaultRelevance = 1.0

// DefaultCoupleWeight is the coupling weight of a function that names none.
const DefaultCoupleWeight = 50.0

// DefaultMaxUtil is the utility ceiling of ZAIC shapes that name none.
const DefaultMaxUtil = 100.0

// MinSummits is the fewest summits a zaic_peak spec may carry.
const MinSummits = 1

// MinFunctions is the fewest function specs a job may carry.
const MinFunctions = 1
