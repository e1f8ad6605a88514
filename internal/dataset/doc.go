// Package dataset retrieves the pricing dataset from its paginated HTTP
// endpoint and keeps the session's current snapshot of it.
//
// Fetching is best effort: a failing page ends pagination and the records
// gathered up to that point form the snapshot.
package dataset

//go:generate mockgen -destination=mocks/source.go -package=mocks github.com/inference-directory/infdir/internal/dataset Source
