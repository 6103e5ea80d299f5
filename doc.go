// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package pufsim simulates delay-based Physical Unclonable Functions (PUFs) as
arrays of linear threshold units and evaluates them in batch over ±1 challenge
vectors.

This includes the generic weighted threshold array (LTFArray), the arbiter
chain specializations built on top of it (ArbiterPUF, FeedForwardArbiterPUF
and their XOR compositions) and a seeded random source that makes weight
sampling, noise and challenge generation reproducible across process runs.

All simulators share the same evaluation surface: Val returns the raw
delay-difference sums of a challenge batch, Eval thresholds them to ±1
responses. A weighted sum of exactly zero thresholds to +1.

*/
package pufsim
