package wordlist

import "embed"

// builtinListsFS embeds the built-in word lists.
//
//go:embed lists/*.yml
var builtinListsFS embed.FS
