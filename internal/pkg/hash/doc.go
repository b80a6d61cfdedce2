// Package hash derives opaque keys from sensitive identifiers so they never
// appear in plain text in an external store.
package hash
