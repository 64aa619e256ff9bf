// Package highlight decides how source files are marked up
// in program listings.
// It uses the Chroma library to recognize languages.
package highlight
