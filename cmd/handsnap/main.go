package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ayusman/handsnap/internal/config"
)

const usage = `Usage:
  handsnap [run] [flags]     watch the camera and take a selfie on a held V sign
  handsnap list [flags]      list recorded selfies
  handsnap delete <id>...    remove selfies from the catalog and disk
  handsnap migrate <action>  show or change the catalog schema version

Run 'handsnap <command> -h' for the flags of a command.
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 {
		switch args[0] {
		case "run", "list", "delete", "migrate", "help":
			cmd, args = args[0], args[1:]
		}
	}

	switch cmd {
	case "run":
		err = runCommand(cfg, args)
	case "list":
		err = listCommand(cfg, args, os.Stdout)
	case "delete":
		err = deleteCommand(cfg, args, os.Stdout)
	case "migrate":
		err = migrateCommand(cfg, args, os.Stdout)
	case "help":
		fmt.Print(usage)
		return
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}
