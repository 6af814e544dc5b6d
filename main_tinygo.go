//go:build tinygo && baremetal

package main

import (
	"morsekey/app"
	"morsekey/hal"
)

func main() {
	app.Run(hal.New(), app.Config{})
}
