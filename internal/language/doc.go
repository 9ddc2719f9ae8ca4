// Package language provides the static ISO 639 language table used to map the
// catalog's 2-letter original language onto the 3-letter codes found in
// container stream tags.
package language
