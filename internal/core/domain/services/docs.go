// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the scheduling core.
//
// The package includes:
//   - AssignmentPlanner: matches driver/truck pairs against a job's
//     requirement slots and produces assignation records
//   - VisibilityPolicy: computes when a job becomes visible to a fleet
//     owner based on priority tiers and distance
//
// Domain services coordinate between aggregates, implementing business
// logic that spans multiple bounded contexts following Domain-Driven
// Design principles.
package services
