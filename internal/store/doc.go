// Package store defines the persistence contract the item service depends on.
// Implementations live under internal/platform; callers only see these
// interfaces and the sentinel errors declared here.
package store
