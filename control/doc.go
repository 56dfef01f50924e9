// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging, metrics and debug introspection for the scale test.
//
// Provides:
//   - Config with defaults and SCALETEST_* environment overrides
//   - logrus logger construction
//   - Prometheus collectors for trial results on a private registry
//   - Probe registration for state dumps
package control
