// Command server runs the registration intake HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML or .env) and environment
// variables; run with -h for the full list.
//
// Exit codes: 0 = clean shutdown, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	_ "time/tzdata"

	"github.com/schulanmeldung/regform-backend/internal/app"
	"github.com/schulanmeldung/regform-backend/internal/config"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-version]\n\n", os.Args[0])
		flag.PrintDefaults()
		config.Usage(flag.CommandLine.Output(), "\nEnvironment:")
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
