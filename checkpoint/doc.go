// SPDX-License-Identifier: MIT
//
// Package checkpoint persists and restores a run's full state: the
// geographic tree (including every node's v_true/v_noisy/v_est written so
// far), the basis it is indexed by, the sampler seed, and the measurement
// and estimation configuration the run was started with. A saved file is a
// self-describing binary envelope — a magic number and format version ahead
// of the payload — so loading a checkpoint written by an incompatible
// version fails fast instead of corrupting the resumed run.
package checkpoint
