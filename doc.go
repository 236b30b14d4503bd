// Package indeploci holds the file plumbing shared by the indeploci tools:
// opening local or Google Storage inputs, undoing compression, and reading
// and writing loci tables. The locus logic itself lives in the loci package.
package indeploci
