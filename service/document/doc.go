// Package document turns a bid into a proposal document.
//
// Generate builds a renderer independent list of blocks (header, summary,
// solution and commercial tables, footer). Renderers lay the blocks out as
// Markdown or PDF. Figures are printed exactly as the backend computed them.
package document
