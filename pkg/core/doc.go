// Package core holds the notebook model: cells, the immutable Notebook,
// construction from a decoded interchange document and the pure transforms
// between notebooks. It has no knowledge of files or wire formats.
package core
