// Package ldclump selects independent lead markers by handing each
// chromosome to plink's --clump and reading back the index variants it
// reports. Chromosomes are clumped concurrently; a failure on one chromosome
// does not stop the others.
package ldclump
