package web

import "embed"

// StaticFS holds the embedded stylesheet and form script.
//
//go:embed static/*
var StaticFS embed.FS
