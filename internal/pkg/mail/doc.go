// Package mail sends email messages through a Mail implementation so callers
// stay independent of the delivery provider.
package mail
