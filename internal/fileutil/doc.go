// Package fileutil swaps a remuxed file into place over its original.
package fileutil
