// Package probe interpolates grid fields at arbitrary positions.
//
// A [Sampler] is built once per field and reused for every query. It
// locates the enclosing cell by index arithmetic on the regular grid and
// blends the cell's vertex values trilinearly (bilinearly on planar grids).
// Positions outside the grid return a *field.OutOfBoundsError; the sampler
// never substitutes a default value.
package probe
