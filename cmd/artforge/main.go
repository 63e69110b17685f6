// artforge - Asset pipeline for the GenerativeMIDI steampunk skin
//
// artforge keys photographed textures into transparent, multi-resolution
// PNGs and keeps an inventory of the UI-ready art.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/noisebox/artforge/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
