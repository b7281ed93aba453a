// Package tuning evaluates ITAE tuning correlations for PI and PID controllers
// on First-Order-Plus-Time-Delay (FOPTD) processes.
//
// A FOPTD process is described by its gain K, dead time θ and time constant τ.
// The correlations give controller settings as power laws of the ratio θ/τ:
//
//   - [ModeP]: Kc = A·(θ/τ)^B / K
//   - [ModeI]: τI = τ / (A·(θ/τ)^B) for disturbance rejection,
//     τI = τ / (A + B·(θ/τ)) for set point tracking
//   - [ModeD]: τD = A·(θ/τ)^B
//
// # Usage
//
//	s := tuning.Evaluate("Disturbance", "PI", 2.0, 1.0, 5.0)
//	if s.Empty() {
//		// unknown input/controller combination
//	}
//	kc := s[tuning.KeyKc]
//
// [Evaluate] never validates its numeric arguments. Callers reject
// non-positive values with [Process.Validate] first.
//
// # Thread Safety
//
// The correlation table is read-only; all functions are safe for concurrent use.
package tuning
