// Package entities contains the core domain objects for the dino-velocity application
package entities

import (
	"math"
	"strconv"
)

// Gravity is the gravity term of the velocity estimator (9.8 squared).
const Gravity = 9.8 * 9.8

// NullFloat is a numeric value that may be absent in the source data.
type NullFloat struct {
	Float64 float64
	Valid   bool // Valid is true if Float64 is present
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// String renders the value, "n/a" when absent.
func (f NullFloat) String() string {
	if !f.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

// NullString is a text value that may be absent in the source data.
type NullString struct {
	String string
	Valid  bool // Valid is true if String is present
}

// Text returns a present NullString.
func Text(s string) NullString {
	return NullString{String: s, Valid: true}
}

// Dinosaur represents a single dinosaur record built from the merged datasets.
// It is immutable: velocity is derived once in NewDinosaur.
type Dinosaur struct {
	name         NullString // Join key
	legLength    NullFloat  // Leg length in meters
	diet         NullString // herbivore, carnivore, ...
	strideLength NullFloat  // Stride length in meters
	stance       NullString // bipedal, quadrupedal, ...
	velocity     NullFloat  // Derived from legLength and strideLength
}

// NewDinosaur creates a dinosaur record and computes its velocity.
func NewDinosaur(name NullString, legLength NullFloat, diet NullString, strideLength NullFloat, stance NullString) Dinosaur {
	return Dinosaur{
		name:         name,
		legLength:    legLength,
		diet:         diet,
		strideLength: strideLength,
		stance:       stance,
		velocity:     Velocity(legLength, strideLength),
	}
}

// Name returns the dinosaur's name.
func (d Dinosaur) Name() NullString { return d.name }

// LegLength returns the leg length in meters.
func (d Dinosaur) LegLength() NullFloat { return d.legLength }

// Diet returns the recorded diet.
func (d Dinosaur) Diet() NullString { return d.diet }

// StrideLength returns the stride length in meters.
func (d Dinosaur) StrideLength() NullFloat { return d.strideLength }

// Stance returns the recorded stance, e.g. bipedal.
func (d Dinosaur) Stance() NullString { return d.stance }

// Velocity returns the velocity derived at construction.
func (d Dinosaur) Velocity() NullFloat { return d.velocity }

// Velocity estimates speed from the relative stride length scaled by a
// gravity term, rounded to two decimals. A missing input yields a missing
// velocity. A zero leg length is not guarded and yields ±Inf or NaN.
func Velocity(legLength, strideLength NullFloat) NullFloat {
	if !legLength.Valid || !strideLength.Valid {
		return NullFloat{}
	}
	if math.IsNaN(legLength.Float64) || math.IsNaN(strideLength.Float64) {
		return NullFloat{}
	}

	relativeStride := strideLength.Float64/legLength.Float64 - 1
	return Float(round2(relativeStride * math.Sqrt(legLength.Float64*Gravity)))
}

// round2 rounds the exact binary value to two decimals.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// VelocityRankKey is the sort key used when ranking by velocity. Missing and
// NaN velocities rank as negative infinity.
func VelocityRankKey(v NullFloat) float64 {
	if !v.Valid || math.IsNaN(v.Float64) {
		return math.Inf(-1)
	}
	return v.Float64
}
