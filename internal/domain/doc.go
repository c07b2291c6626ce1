// Package domain contains the core entities of the item service and the
// rules that belong to them, independent of storage or delivery concerns.
package domain
