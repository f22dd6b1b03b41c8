package main

import "order-features/cmd"

func main() {
	cmd.Execute()
}
