// Package catalog declares the content profiles a reel can be built from.
//
// A profile is data, not code: the embedded YAML catalog maps each profile
// name to an ordered list of scene slots carrying the slot role, nominal
// duration, and fade lengths. Manifest entries are checked against the
// profile slot-by-slot, manifest durations replace the nominal ones, and
// the countdown slot is expanded into its fixed sub-scenes, yielding the
// concrete scene list the timeline builder consumes.
package catalog
