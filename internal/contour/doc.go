// Package contour extracts iso-lines from scalar fields on planar quad grids.
//
// Every cell is classified on its own: cells whose four corners all lie
// strictly below or strictly above the isovalue are skipped, the rest have
// their edges walked in loop order and each crossing is placed by linear
// interpolation. Two crossings give one segment; four crossings (a saddle)
// give two segments paired according to [Pairing].
//
//	set, err := contour.Extract(ds, "pressure", contour.Options{Isovalue: 0, PlaneZ: 25})
//
// Points are never shared between segments, so a [PolylineSet] can be
// handed straight to a writer.
package contour
