// Package streamline traces flow lines through sampled vector fields.
//
// A [Tracer] owns one sampler and one integrator for its whole life and
// runs two independent passes from the seed: forward with +h, appending,
// and backward with -h, prepending. The seed appears once, at
// [Streamline.SeedIndex].
//
//	s, _ := probe.FromSource(ds, "vectors")
//	tr, _ := streamline.New(s, integrators.NewRK4(integrators.Zero), streamline.DefaultOptions())
//	line, err := tr.Generate(field.Vec3{0.5, 0.5, 0.5})
//
// With [FixedSteps] and the zero boundary policy a trace that reaches the
// domain edge stalls in place rather than ending; [StopOnExit] and
// [StopOnStagnation] end the pass early instead.
package streamline
