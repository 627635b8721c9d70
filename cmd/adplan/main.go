package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/config"
)

const (
	checkmark = "\u2713"
	crossmark = "\u2717"
	ellipsis  = "\u2026"
)

func main() {
	app := kingpin.New("adplan", "Inspect, render and share drawing plans")
	app.HelpFlag.Short('h')

	var (
		cfgPath = app.Flag("config", "Configuration file").Short('c').Default(defaultConfigPath()).String()
		verbose = app.Flag("verbose", "Verbose output").Short('v').Bool()
	)

	ls := app.Command("ls", "List stored plans").Default()

	create := app.Command("new", "Create an empty plan in the storage")
	createName := create.Arg("name", "Plan name").Required().String()

	remove := app.Command("rm", "Delete a plan from the storage")
	removeName := remove.Arg("name", "Plan name").Required().String()

	info := app.Command("info", "Show the contents of a plan")
	infoPlan := info.Arg("plan", "Plan file or stored plan name").Required().String()

	check := app.Command("check", "Decode and validate a plan")
	checkPlan := check.Arg("plan", "Plan file or stored plan name").Required().String()

	rnd := app.Command("render", "Render all pages of a plan to PNG")
	var (
		rndPlan = rnd.Arg("plan", "Plan file or stored plan name").Required().String()
		rndOut  = rnd.Flag("output", "Output directory").Short('o').Default(".").String()
	)

	pdf := app.Command("pdf", "Export a plan to PDF")
	var (
		pdfPlan = pdf.Arg("plan", "Plan file or stored plan name").Required().String()
		pdfOut  = pdf.Flag("output", "Output file").Short('o').String()
	)

	clip := app.Command("clip", "Print a page as clipboard text")
	var (
		clipPlan = clip.Arg("plan", "Plan file or stored plan name").Required().String()
		clipPage = clip.Arg("page", "Page index").Default("0").Int()
	)

	paste := app.Command("paste", "Append clipboard text from stdin to a stored plan")
	var (
		pasteName = paste.Arg("name", "Plan name").Required().String()
		pastePage = paste.Arg("page", "Page index").Default("0").Int()
	)

	push := app.Command("push", "Send the pages of a plan to a relay server")
	var (
		pushPlan = push.Arg("plan", "Plan file or stored plan name").Required().String()
		pushURL  = push.Flag("url", "Relay URL").Short('u').String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	adplan.SetLogLevel(cfg.LogLevel)

	s := settings{cfg: cfg}

	switch command {
	case ls.FullCommand():
		err = doLs(s)
	case create.FullCommand():
		err = doNew(s, *createName)
	case remove.FullCommand():
		err = doRm(s, *removeName)
	case info.FullCommand():
		err = doInfo(s, *infoPlan)
	case check.FullCommand():
		err = doCheck(s, *checkPlan)
	case rnd.FullCommand():
		err = doRender(s, *rndPlan, *rndOut)
	case pdf.FullCommand():
		err = doPdf(s, *pdfPlan, *pdfOut)
	case clip.FullCommand():
		err = doClip(s, *clipPlan, *clipPage)
	case paste.FullCommand():
		err = doPaste(s, *pasteName, *pastePage)
	case push.FullCommand():
		err = doPush(s, *pushPlan, *pushURL)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

type settings struct {
	cfg *config.Config
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adplan.yaml"
	}
	return filepath.Join(dir, "adplan", "config.yaml")
}
