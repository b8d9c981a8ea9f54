package main

import "github.com/frahmantamala/petty-cash-management/cmd"

func main() {
	cmd.Execute()
}
