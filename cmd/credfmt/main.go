package main

import "github.com/arloliu/credfmt/cmd/credfmt/cmd"

func main() {
	cmd.Execute()
}
