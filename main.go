package main

import (
	"os"

	"github.com/hilite/hilite-go/lib/cli"
	"github.com/hilite/hilite-go/lib/loadtest"
	"github.com/hilite/hilite-go/lib/server"
	"github.com/hilite/hilite-go/lib/utils"
)

func main() {
	setupLogger := utils.SetupLogger()
	defer setupLogger.Sync()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "watch":
			cli.RunFromCLI(setupLogger, os.Args[2:])
			return
		case "loadtest":
			loadtest.RunFromCLI(setupLogger, os.Args[2:])
			return
		}
	}

	server.InitServer(setupLogger)
}
