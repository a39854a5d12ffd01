package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var ErrHelp = errors.New("help requested")

type Options struct {
	NoColor     bool
	Verbose     bool
	Debug       bool
	WithTor     bool
	CheckUpdate bool

	Name         string
	Domains      []string
	MaxProbes    int
	Delay        time.Duration
	Timeout      time.Duration
	SitesFile    string
	HIBPKey      string
	BreachDirKey string
}

const usageText = `
usage:
  namehunt [flags] FULL NAME
  namehunt -n "FULL NAME" [flags]

positional arguments:
  FULL NAME             the person's full name (joined with spaces)

flags:
  -h, --help            show this help message and exit
  --no-color            disable colored stdout output
  -t, --tor             use tor proxy
  -v, --verbose         print misses and errors, not just hits
  --debug               debug logging
  --check-update        check GitHub for a newer release and exit

options:
  -n, --name NAME       full name to investigate
  --domains D1,D2,...   email domains to try (default: gmail.com,yahoo.com,outlook.com)
  --max-probes N        cap on profile requests per run (default: 50)
  --delay SECONDS       pause between consecutive requests (default: 1)
  --timeout SECONDS     HTTP request timeout (default: 7)
  --sites PATH          load the site registry from a JSON file
  --hibp KEY            Have I Been Pwned API key (env: HIBP_API_KEY)
  --breach-directory KEY
                        Breach Directory API key (env: BREACHDIRECTORY_API_KEY)
`

func Parse(args []string, stdout, stderr io.Writer) (Options, error) {
	var opts Options
	var (
		help       bool
		domainsCSV string
		delayS     int
		timeoutS   int
	)

	fs := flag.NewFlagSet("namehunt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		_, _ = fmt.Fprint(stdout, usageText)
	}

	// Help
	fs.BoolVar(&help, "h", false, "show help")
	fs.BoolVar(&help, "help", false, "show help")

	// Behavior flags
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose output")
	fs.BoolVar(&opts.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&opts.Debug, "debug", false, "debug logging")
	fs.BoolVar(&opts.WithTor, "t", false, "use tor proxy")
	fs.BoolVar(&opts.WithTor, "tor", false, "use tor proxy")
	fs.BoolVar(&opts.CheckUpdate, "check-update", false, "check for a newer release")

	// Options
	fs.StringVar(&opts.Name, "n", "", "full name to investigate")
	fs.StringVar(&opts.Name, "name", "", "full name to investigate")
	fs.StringVar(&domainsCSV, "domains", "", "comma-separated email domains")
	fs.IntVar(&opts.MaxProbes, "max-probes", 50, "cap on profile requests per run")
	fs.IntVar(&delayS, "delay", 1, "pause between requests in seconds")
	fs.IntVar(&timeoutS, "timeout", 7, "request timeout in seconds")
	fs.StringVar(&opts.SitesFile, "sites", "", "site registry JSON file")
	fs.StringVar(&opts.HIBPKey, "hibp", "", "Have I Been Pwned API key")
	fs.StringVar(&opts.BreachDirKey, "breach-directory", "", "Breach Directory API key")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if help {
		fs.Usage()
		return Options{}, ErrHelp
	}

	if opts.MaxProbes <= 0 {
		opts.MaxProbes = 50
		if opts.NoColor {
			fmt.Fprintf(stdout, "[!] Invalid probe cap; using default of 50.\n")
		} else {
			fmt.Fprintf(color.Output, "[%s] Invalid probe cap; using default of %s.\n",
				color.HiRedString("!"),
				color.HiYellowString("50"),
			)
		}
	}

	if delayS < 0 {
		delayS = 1
	}
	opts.Delay = time.Duration(delayS) * time.Second

	if timeoutS <= 0 {
		timeoutS = 7
		if opts.NoColor {
			fmt.Fprintf(stdout, "[!] Invalid timeout value; using default of 7 seconds.\n")
		} else {
			fmt.Fprintf(color.Output, "[%s] Invalid timeout value; using default of %s.\n",
				color.HiRedString("!"),
				color.HiYellowString("7 seconds"),
			)
		}
	}
	opts.Timeout = time.Duration(timeoutS) * time.Second

	if domainsCSV != "" {
		raw := strings.Split(domainsCSV, ",")
		opts.Domains = make([]string, 0, len(raw))
		for _, d := range raw {
			d = strings.TrimSpace(d)
			if d != "" {
				opts.Domains = append(opts.Domains, d)
			}
		}
	}

	// The name may also arrive as positional arguments.
	if opts.Name == "" {
		opts.Name = strings.TrimSpace(strings.Join(fs.Args(), " "))
	}

	// API keys fall back to the environment.
	if opts.HIBPKey == "" {
		opts.HIBPKey = os.Getenv("HIBP_API_KEY")
	}
	if opts.BreachDirKey == "" {
		opts.BreachDirKey = os.Getenv("BREACHDIRECTORY_API_KEY")
	}

	return opts, nil
}
