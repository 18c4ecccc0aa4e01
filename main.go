// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// publish-check entry point

package main

import "github.com/leynos/publish-check/cmd"

func main() {
	cmd.Execute()
}
