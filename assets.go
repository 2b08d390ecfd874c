// Package esangam provides embedded assets for production builds.
package esangam

import "embed"

// Embedded assets for production builds.
// In dev mode (DEV=true), assets are loaded from disk for hot reloading.
// In production mode, assets are served from these embedded filesystems.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
