package service

import "math/rand/v2"

// Bounds of the institute identifier space.
const (
	MinInstituteID = 10000
	MaxInstituteID = 99999
)

// GenerateInstituteID draws a uniformly random 5-digit institute id.
// Uniqueness is not guaranteed here; InstituteService.Resolve only calls it
// for names that have no id yet.
func GenerateInstituteID() int {
	return MinInstituteID + rand.IntN(MaxInstituteID-MinInstituteID+1)
}
