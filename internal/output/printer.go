package output

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/jkrls/namehunt/internal/breach"
	"github.com/jkrls/namehunt/internal/hibp"
	"github.com/jkrls/namehunt/internal/probe"
	"github.com/jkrls/namehunt/internal/recon"
)

type Printer struct {
	out     io.Writer
	noColor bool
	verbose bool

	logger *log.Logger
}

func NewPrinter(stdout io.Writer, noColor, verbose bool) *Printer {
	return &Printer{
		out:     stdout,
		noColor: noColor,
		verbose: verbose,
		logger:  log.New(stdout, "", 0),
	}
}

func (p *Printer) Logger() *log.Logger {
	return p.logger
}

// Probe renders one streamed probe event. Hits always print; misses and
// unknowns only in verbose mode.
func (p *Printer) Probe(ev recon.ProbeEvent) {
	switch ev.Phase {
	case recon.PhaseProfiles:
		p.profileEvent(ev)
	case recon.PhaseEmails:
		p.emailEvent(ev)
	}
}

func (p *Printer) profileEvent(ev recon.ProbeEvent) {
	res := ev.Profile

	if res.Presence == probe.Found {
		if p.noColor {
			p.logger.Printf("[%s] %s: %s (%d)", "+", ev.Site, res.URL, res.Status)
		} else {
			p.logger.Printf("[%s] %s: %s (%d)", color.HiGreenString("+"), color.HiWhiteString(ev.Site), res.URL, res.Status)
		}
		return
	}

	if !p.verbose {
		return
	}

	if res.Presence == probe.Unknown {
		if p.noColor {
			p.logger.Printf("[%s] %s %s: ERROR: %s", "!", ev.Site, ev.Username, res.Detail)
		} else {
			p.logger.Printf("[%s] %s %s: %s: %s",
				color.HiRedString("!"),
				ev.Site,
				ev.Username,
				color.HiMagentaString("ERROR"),
				color.HiRedString(res.Detail),
			)
		}
		return
	}

	if p.noColor {
		p.logger.Printf("[%s] %s %s: %s", "-", ev.Site, ev.Username, "Not Found!")
	} else {
		p.logger.Printf("[%s] %s %s: %s", color.HiRedString("-"), ev.Site, ev.Username, color.HiYellowString("Not Found!"))
	}
}

func (p *Printer) emailEvent(ev recon.ProbeEvent) {
	res := ev.Breach

	if res.Status == hibp.Breached {
		names := ""
		if len(res.Breaches) > 0 {
			names = " (" + strings.Join(res.Breaches, ", ") + ")"
		}
		if p.noColor {
			p.logger.Printf("[%s] %s: breached%s", "+", ev.Email, names)
		} else {
			p.logger.Printf("[%s] %s: %s%s", color.HiGreenString("+"), color.HiWhiteString(ev.Email), color.HiRedString("breached"), names)
		}
		return
	}

	if !p.verbose {
		return
	}

	switch res.Status {
	case hibp.NotBreached:
		if p.noColor {
			p.logger.Printf("[%s] %s: no known breaches", "-", ev.Email)
		} else {
			p.logger.Printf("[%s] %s: %s", color.HiRedString("-"), ev.Email, color.HiYellowString("no known breaches"))
		}
	default:
		if p.noColor {
			p.logger.Printf("[%s] %s: %s", "!", ev.Email, res.Detail)
		} else {
			p.logger.Printf("[%s] %s: %s", color.HiRedString("!"), ev.Email, color.HiRedString(res.Detail))
		}
	}
}

// Findings renders the accumulated hits as tables.
func (p *Printer) Findings(f recon.Findings) {
	if len(f.Profiles) > 0 {
		p.logger.Printf("\nConfirmed profiles:")
		table := tablewriter.NewTable(p.out)
		table.Header("No", "Site", "Username", "URL", "Status")
		for i, hit := range f.Profiles {
			table.Append(i+1, hit.Site, hit.Username, hit.URL, hit.Status)
		}
		if err := table.Render(); err != nil {
			p.logger.Printf("table render failed: %v", err)
		}
	} else {
		p.logger.Printf("\nNo profiles confirmed.")
	}

	if len(f.Breaches) > 0 {
		p.logger.Printf("\nEmails in breach data:")
		table := tablewriter.NewTable(p.out)
		table.Header("No", "Email", "Breaches")
		for i, hit := range f.Breaches {
			table.Append(i+1, hit.Email, strings.Join(hit.Breaches, ", "))
		}
		if err := table.Render(); err != nil {
			p.logger.Printf("table render failed: %v", err)
		}
	}
}

// BreachEntries renders Breach Directory records for one username.
func (p *Printer) BreachEntries(username string, entries []breach.Entry) {
	if len(entries) == 0 {
		if p.verbose {
			p.logger.Printf("[-] %s: no breach directory records", username)
		}
		return
	}

	p.logger.Printf("\nBreach Directory records for %s:", username)
	table := tablewriter.NewTable(p.out)
	table.Header("No", "Password", "SHA1", "Source")
	for i, e := range entries {
		table.Append(i+1, e.Password, e.SHA1, e.Sources)
	}
	if err := table.Render(); err != nil {
		p.logger.Printf("table render failed: %v", err)
	}
}

// Summary renders the borderless closing table.
func (p *Printer) Summary(f recon.Findings, elapsed time.Duration) {
	p.logger.Printf("")
	table := tablewriter.NewTable(p.out, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Append("Profiles confirmed", len(f.Profiles))
	table.Append("Emails in breaches", len(f.Breaches))
	table.Append("Profile probes issued", f.Probes)
	table.Append("Total time taken", elapsed.Round(time.Millisecond))
	if err := table.Render(); err != nil {
		p.logger.Printf("table render failed: %v", err)
	}
}
