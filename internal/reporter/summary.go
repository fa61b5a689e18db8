package reporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/aleister1102/mirrorcheck/internal/verifier"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// SummaryPrinter renders the end-of-run table.
type SummaryPrinter struct {
	out     io.Writer
	colored bool
}

// NewSummaryPrinter creates a SummaryPrinter writing to out
func NewSummaryPrinter(out io.Writer, colored bool) *SummaryPrinter {
	return &SummaryPrinter{out: out, colored: colored}
}

// Print writes one row per mirror followed by the baseline and the totals.
func (sp *SummaryPrinter) Print(report *verifier.Report) {
	table := tablewriter.NewWriter(sp.out)
	table.SetHeader([]string{"#", "Host", "Outcome", "Bytes", "Digest"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, m := range report.Mirrors {
		table.Append([]string{
			strconv.Itoa(m.Endpoint.Index),
			m.Endpoint.Host,
			sp.outcome(m.Outcome),
			bytesCell(m.Bytes, m.Fetched),
			shortDigest(m.Digest.Hex()),
		})
	}

	baselineOutcome := "ok"
	if report.Baseline.Err != nil {
		baselineOutcome = sp.paint(color.FgRed, "failed")
	}
	table.SetFooter([]string{
		"base",
		report.Baseline.Endpoint.Host,
		baselineOutcome,
		bytesCell(report.Baseline.Bytes, report.Baseline.Fetched),
		shortDigest(report.Baseline.Digest.Hex()),
	})
	table.Render()

	s := report.Summary()
	_, _ = fmt.Fprintf(sp.out, "run %s: %d mirrors, %d match, %d mismatch, %d unreachable, %d fetch failed",
		report.RunID, s.Total, s.Match, s.Mismatch, s.Unreachable, s.FetchFailed)
	if s.NotCompared > 0 {
		_, _ = fmt.Fprintf(sp.out, ", %d not compared", s.NotCompared)
	}
	if s.Skipped > 0 {
		_, _ = fmt.Fprintf(sp.out, ", %d skipped", s.Skipped)
	}
	_, _ = fmt.Fprintf(sp.out, " in %s\n", common.FormatDuration(report.Duration()))
	if report.Baseline.Err != nil {
		_, _ = fmt.Fprintf(sp.out, "baseline error: %v\n", report.Baseline.Err)
	}
}

func (sp *SummaryPrinter) outcome(o verifier.Outcome) string {
	switch o {
	case verifier.OutcomeDigestMatch:
		return sp.paint(color.FgGreen, string(o))
	case verifier.OutcomeDigestMismatch, verifier.OutcomeFetchFailed:
		return sp.paint(color.FgRed, string(o))
	case verifier.OutcomeUnreachable, verifier.OutcomeSkipped:
		return sp.paint(color.FgYellow, string(o))
	default:
		return string(o)
	}
}

func (sp *SummaryPrinter) paint(attr color.Attribute, s string) string {
	if !sp.colored {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func bytesCell(n int64, fetched bool) string {
	if !fetched {
		return "-"
	}
	return common.FormatBytes(n)
}

func shortDigest(hex string) string {
	if hex == "" {
		return "-"
	}
	if len(hex) > DigestDisplayLength {
		return hex[:DigestDisplayLength]
	}
	return hex
}
