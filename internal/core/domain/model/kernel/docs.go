// Package kernel contains the shared value objects of the scheduling domain:
// UUID identifiers, time windows, and geographic points. All types are
// immutable, validated at construction, and safe for concurrent use.
package kernel
