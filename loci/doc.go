// Package loci turns a table of significant GWAS markers into independent
// genomic loci. A Selector picks lead markers, Expand widens every lead into
// a fixed-width interval and Merge collapses overlapping intervals that sit
// on the same chromosome.
//
// Identify runs the three stages in order.
package loci
