// Package voterregistry implements voter identity inside the identity-access
// context.
//
// The module owns voter registration keyed by a unique external document
// identifier and the eligibility check against the (stubbed) external
// validation service. The poll-service consumes it through a read-only
// directory port wired in bootstrap.
package voterregistry
