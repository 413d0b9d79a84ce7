package main

import "github.com/goplus/luasrc/cmd/luasrc/internal"

func main() {
	internal.Execute()
}
