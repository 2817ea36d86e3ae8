// Package pages composes full HTML pages from the shared layout and components.
package pages
