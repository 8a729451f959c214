// Package engine enforces the consistency rules between users, coaches,
// fitness classes, registrations and recommendations.
//
// Every function takes the current snapshot of the collections it needs and
// returns the next snapshot. Input slices are never modified and nothing is
// retained between calls, so callers are responsible for loading fresh
// snapshots and for persisting the result. Authorization is the caller's
// concern.
package engine
