// Package models defines client-side data shapes persisted in the local
// database.
package models

// StoredFile is one supporting document the customer staged for an order,
// held locally until the checkout flow explicitly uploads it.
//
// Data is the base64-encoded payload. UploadedAt is unix milliseconds of
// the moment the file entered the cache (not of any backend upload).
type StoredFile struct {
	ID         string
	Name       string
	Type       string // MIME type
	Size       int64  // bytes
	Data       string // base64
	UploadedAt int64
}
