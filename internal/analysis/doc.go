// Package analysis summarizes traced streamlines and extracted contours.
//
//   - [StreamlineStats]: arc length, extent, probed speed and stalled steps
//   - [ContourStats]: segment count, total length and degenerate cells
//   - [PowerSpectrum], [WindingSpectrum]: FFT power of a coordinate series
//   - [WindingAngle]: unwrapped turning angle around a vertical axis
//   - [PlaneCrossings]: where a streamline pierces an axis-aligned plane
//   - [ProjectionASCII]: terminal preview of a point set
//
// # Spotting a stalled trace
//
// Under the zero boundary policy a streamline that reaches the domain edge
// keeps emitting the same point. Stalled counts those zero-length steps:
//
//	st := analysis.StreamlineStats(line, sampler)
//	if st.Stalled > 0 {
//	    // the trace hit the boundary
//	}
package analysis
