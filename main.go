package main

import "github.com/dh1tw/audiohal/cmd"

func main() {
	cmd.Execute()
}
