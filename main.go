package main

import (
	"github.com/RasseTheBoy/ufw-tui/system"
	"github.com/RasseTheBoy/ufw-tui/system/local"
)

func main() {
	local.RequireRoot()
	system.RunTUIMode()
}
