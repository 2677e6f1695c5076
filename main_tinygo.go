//go:build tinygo

package main

import (
	"inkpad/app"
	"inkpad/hal"
	"inkpad/internal/buildinfo"
)

func main() {
	app.Run(hal.New(), app.Config{Version: buildinfo.Short()})
}
