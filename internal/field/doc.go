// Package field provides the grid and field primitives shared by the
// contouring and streamline packages.
//
// The package defines the read-only data model every analysis consumes:
//
//   - [Vec3]: 3D position or vector value
//   - [ImageData]: structured regular grid (origin, spacing, dimensions)
//   - [ScalarField], [VectorField]: per-point samples indexed like the grid points
//   - [Source]: the grid field source interface consumed by the extractor
//   - [Dataset]: in-memory [Source] holding named arrays
//
// # Example
//
//	grid, _ := field.NewImageData([3]int{64, 64, 1}, field.Vec3{}, field.Vec3{1, 1, 1})
//	ds := field.NewDataset(grid)
//	_ = ds.AddScalars("pressure", values)
//
// # Thread Safety
//
// Grids and fields are immutable after construction and may be shared
// between goroutines without locking.
package field
