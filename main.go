package main

import "github.com/yumyai/genoqc/cmd"

func main() {
	cmd.Execute()
}
