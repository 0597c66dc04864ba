// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import "embed"

//go:embed assets
var assets embed.FS
