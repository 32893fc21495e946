package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ImplementationMeta describes an implementation for the summary table.
type ImplementationMeta struct {
	PkgName  string
	Features []string
}

// WriteMarkdownTable writes a throughput summary of session, fastest first.
// meta is keyed by implementation name; unknown names get empty columns.
func WriteMarkdownTable(w io.Writer, session FullReport, meta map[string]ImplementationMeta) error {
	type tableRow struct {
		implementation string
		mode           string
		pkgName        string
		features       string
		throughput     float64
	}
	rows := make([]tableRow, 0, len(session.Benchmarks))
	for _, bench := range session.Benchmarks {
		m := meta[bench.Implementation]
		rows = append(rows, tableRow{
			implementation: bench.Implementation,
			mode:           bench.Mode,
			pkgName:        m.PkgName,
			features:       strings.Join(m.Features, ", "),
			throughput:     bench.Throughput,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].throughput > rows[j].throughput
	})

	var sb strings.Builder
	sb.WriteString("## Last Session Benchmark Summary\n\n")
	sb.WriteString("| Implementation           | Mode       | Package         | Features                    | Throughput (msgs/sec) |\n")
	sb.WriteString("|--------------------------|------------|-----------------|-----------------------------|-----------------------|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %-24s | %-10s | %-15s | %-27s | %21.0f |\n",
			r.implementation, r.mode, r.pkgName, r.features, r.throughput)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
