// Package textutil normalizes candidate movie titles pulled from file paths.
//
// CleanTitle strips decoration such as dots, brackets and underscores while
// keeping letters from any script. RemoveNonTitleWords filters resolution
// markers and release-group jargon from tokenized titles using an embedded
// vocabulary. MatchKey produces the diacritic-folded ASCII key used when
// comparing catalog titles to path titles.
package textutil
