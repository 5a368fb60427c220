// Package dashboard answers the named queries behind each dashboard panel.
//
// A Dashboard wraps one snapshot. Count charts and the listings table read the
// full record set; salary charts read the outlier-trimmed set. Every query
// returns a freshly allocated result and never modifies the snapshot, so one
// Dashboard may serve concurrent callers.
package dashboard
