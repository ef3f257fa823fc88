package commands

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
)

const rule = "──────────────────────────────────────────────────────────────────────"

// writeChartTable prints one chart in the tabular CLI layout.
func writeChartTable(w io.Writer, resp chart.Response) error {
	title := resp.Name
	if title == "" {
		title = "Natal chart"
	}
	lagna := resp.Chart.Lagna
	nak, pada := natal.NakshatraOf(lagna.Longitude)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Born      : %s %s (%s)\n", resp.Birth.Date, resp.Birth.Time, resp.Birth.Timezone)
	if resp.Place != "" {
		fmt.Fprintf(w, "  Place     : %s\n", resp.Place)
	}
	fmt.Fprintf(w, "  Location  : %.4f, %.4f\n", resp.Birth.Latitude, resp.Birth.Longitude)
	fmt.Fprintf(w, "  UTC       : %s\n", resp.Chart.Moment.UTC.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Ayanamsa  : %s (Lahiri)\n", formatDegree(resp.Chart.Moment.Ayanamsa))
	fmt.Fprintf(w, "  Lagna     : %s %s  %s pada %d", lagna.Sign, formatDegree(lagna.Degree), nak.Name, pada)
	if lagna.LowConfidence {
		fmt.Fprint(w, "  (low confidence)")
	}
	fmt.Fprintln(w)
	if resp.ID != "" {
		fmt.Fprintf(w, "  Chart ID  : %s\n", resp.ID)
	}
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Planet\tSign\tDegree\tHouse\tNakshatra\tPada\tLord\tMotion\tDignity\t")
	for _, p := range resp.Chart.Planets {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\t%d\t%s\t%s\t%s\t\n",
			p.Planet, p.Sign, formatDegree(p.Degree), p.House, p.Nakshatra, p.Pada, p.NakshatraLord, motionFlags(p), p.Dignity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(resp.Aspects) > 0 {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "  Aspects")
		for _, a := range resp.Aspects {
			fmt.Fprintf(w, "  %-8s -> houses %s%s\n", a.Planet, joinInts(a.Houses), aspectTargets(a.Targets))
		}
	}
	fmt.Fprintln(w, rule)
	return nil
}

func motionFlags(p natal.PlanetReading) string {
	var flags []string
	if p.Retrograde {
		flags = append(flags, "R")
	}
	if p.Combust {
		flags = append(flags, "C")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// formatDegree renders decimal degrees as D°MM'SS".
func formatDegree(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	total := int(math.Round(value * 3600))
	d := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%s%d°%02d'%02d\"", sign, d, m, s)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func aspectTargets(targets []natal.Planet) string {
	if len(targets) == 0 {
		return ""
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return " (" + strings.Join(names, ", ") + ")"
}
