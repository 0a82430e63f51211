// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"placenear/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
