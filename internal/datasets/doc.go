// Package datasets builds grid field sources: analytic vector fields for
// tracing, planar scalar fields for contouring, and a CSV loader for
// sampled scalar slices.
//
// Vector datasets carry an array named [Vectors] and scalar datasets one
// named [Scalars].
package datasets
