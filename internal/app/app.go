package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/jkrls/namehunt/internal/breach"
	"github.com/jkrls/namehunt/internal/cli"
	"github.com/jkrls/namehunt/internal/hibp"
	"github.com/jkrls/namehunt/internal/httpx"
	"github.com/jkrls/namehunt/internal/namegen"
	"github.com/jkrls/namehunt/internal/output"
	"github.com/jkrls/namehunt/internal/probe"
	"github.com/jkrls/namehunt/internal/recon"
	"github.com/jkrls/namehunt/internal/sites"
	"github.com/jkrls/namehunt/internal/update"
)

const Version = "1.0.0"

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fmt.Fprintln(stdout, "namehunt - Find public accounts from a person's name.")

	opts, err := cli.Parse(args, stdout, stderr)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	color.NoColor = opts.NoColor

	log := logrus.New()
	log.SetOutput(stderr)
	switch {
	case opts.Debug:
		log.SetLevel(logrus.DebugLevel)
	case opts.Verbose:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	probeClient, err := httpx.NewClient(httpx.ClientConfig{
		Timeout:     opts.Timeout,
		WithTor:     opts.WithTor,
		TorProxyURL: httpx.DefaultTorProxyURL,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize HTTP client: %v\n", err)
		return 1
	}

	if opts.CheckUpdate {
		return runUpdateCheck(ctx, stdout, stderr, probeClient, opts.NoColor)
	}

	registry, err := loadRegistry(opts.SitesFile)
	if err != nil {
		fmt.Fprintf(stderr, "site registry error: %v\n", err)
		return 1
	}

	if opts.Name == "" {
		opts.Name = promptName(stdout, os.Stdin)
		if opts.Name == "" {
			fmt.Fprintln(stderr, "no name provided")
			return 2
		}
	}

	// Breach lookups get their own client with a longer timeout; the Tor
	// setting carries over.
	hibpClient, err := httpx.NewClient(httpx.ClientConfig{
		Timeout:     hibp.DefaultTimeout,
		WithTor:     opts.WithTor,
		TorProxyURL: httpx.DefaultTorProxyURL,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize HTTP client: %v\n", err)
		return 1
	}

	prober := probe.New(probeClient, httpx.DefaultUserAgent, log)
	emails := hibp.NewClient(opts.HIBPKey, hibpClient, log)

	if !emails.Enabled() {
		if opts.NoColor {
			fmt.Fprintf(stdout, "[!] No HIBP API key; email breach checks report unknown.\n")
		} else {
			fmt.Fprintf(color.Output, "[%s] No HIBP API key; email breach checks report %s.\n",
				color.HiBlueString("!"),
				color.HiYellowString("unknown"),
			)
		}
	}

	finder := recon.NewFinder(prober, emails, registry, recon.Config{
		Domains:   opts.Domains,
		MaxProbes: opts.MaxProbes,
		Interval:  opts.Delay,
	}, log)

	usernames := namegen.Usernames(opts.Name)

	if opts.NoColor {
		fmt.Fprintf(stdout, "\nInvestigating %s across %d sites (%d username candidates):\n",
			opts.Name, len(registry), len(usernames))
	} else {
		fmt.Fprintf(color.Output, "\nInvestigating %s across %d sites (%d username candidates):\n",
			color.HiGreenString(opts.Name), len(registry), len(usernames))
	}

	printer := output.NewPrinter(stdout, opts.NoColor, opts.Verbose)

	// The bar tracks profile probes only; the cap bounds the total.
	barTotal := len(usernames) * len(registry)
	if barTotal > opts.MaxProbes {
		barTotal = opts.MaxProbes
	}
	bar := progressbar.NewOptions(barTotal,
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("probing"),
		progressbar.OptionClearOnFinish(),
	)

	started := time.Now()
	findings, err := finder.FindPublicAccounts(ctx, opts.Name, func(ev recon.ProbeEvent) {
		if ev.Phase == recon.PhaseProfiles {
			_ = bar.Add(1)
		}
		printer.Probe(ev)
	})
	_ = bar.Finish()
	if err != nil {
		fmt.Fprintf(stderr, "interrupted: %v\n", err)
	}

	printer.Findings(findings)

	if opts.BreachDirKey != "" && len(findings.Profiles) > 0 {
		runBreachDirectory(opts.BreachDirKey, findings, printer, stderr)
	}

	printer.Summary(findings, time.Since(started))

	if err != nil {
		return 1
	}
	return 0
}

func loadRegistry(path string) ([]sites.Site, error) {
	if path == "" {
		return sites.Builtin(), nil
	}
	return sites.LoadFile(path)
}

func promptName(stdout io.Writer, stdin io.Reader) string {
	fmt.Fprint(stdout, "Enter the full name to investigate: ")
	r := bufio.NewReader(stdin)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// runBreachDirectory looks up every distinct confirmed username.
func runBreachDirectory(apiKey string, findings recon.Findings, printer *output.Printer, stderr io.Writer) {
	client, err := breach.NewClient(apiKey)
	if err != nil {
		fmt.Fprintf(stderr, "breach directory: %v\n", err)
		return
	}

	seen := make(map[string]bool, len(findings.Profiles))
	for _, hit := range findings.Profiles {
		if seen[hit.Username] {
			continue
		}
		seen[hit.Username] = true

		entries, err := client.Lookup(hit.Username)
		if err != nil {
			fmt.Fprintf(stderr, "breach directory: %v\n", err)
			continue
		}
		printer.BreachEntries(hit.Username, entries)
	}
}

func runUpdateCheck(ctx context.Context, stdout, stderr io.Writer, client httpx.Doer, noColor bool) int {
	latest, err := update.Check(ctx, client, Version)
	if err != nil {
		fmt.Fprintf(stderr, "update check failed: %v\n", err)
		return 1
	}
	if latest == "" {
		fmt.Fprintf(stdout, "namehunt %s is up to date.\n", Version)
		return 0
	}

	if noColor {
		fmt.Fprintf(stdout, "A newer release is available: %s (running %s)\n", latest, Version)
	} else {
		fmt.Fprintf(color.Output, "A newer release is available: %s (running %s)\n",
			color.HiGreenString(latest), Version)
	}
	return 0
}
