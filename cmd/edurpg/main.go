package main

import "edurpg/cmd/edurpg/root"

func main() {
	root.Execute()
}
