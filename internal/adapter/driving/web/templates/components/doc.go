// Package components renders the form, its widgets and the submissions table.
package components
