// Lexicon reads, checks and queries dictionary files written in the entry
// notation, one entry per line:
//
//	rise[sp:rose,pp:risen]
//	abandon|abandoned,abandonment
//	better>>(cmp)good
//
// Usage:
//
//	# Check files for syntax errors, duplicates, role conflicts and cycles
//	lexicon lint words.lex
//
//	# Check every notation file below a directory
//	lexicon lint --dir dictionaries/
//
//	# Rewrite a file in canonical form
//	lexicon fmt --write words.lex
//
//	# Query a file
//	lexicon count words.lex
//	lexicon words --unique words.lex
//	lexicon redirects --format csv words.lex
//	lexicon find good words.lex
//
//	# Re-lint whenever files change
//	lexicon watch dictionaries/
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
