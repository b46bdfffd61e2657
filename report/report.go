package report

import (
	"brc/agg"
	"bufio"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

type Format int

const (
	FormatBraces Format = iota
	FormatTable
)

func ParseFormat(name string) (Format, error) {
	switch name {
	case "braces":
		return FormatBraces, nil
	case "table":
		return FormatTable, nil
	}
	return 0, fmt.Errorf("unknown output format %q", name)
}

func Write(w io.Writer, f Format, res agg.Result) error {
	switch f {
	case FormatBraces:
		return WriteBraces(w, res)
	case FormatTable:
		return WriteTable(w, res)
	}
	return fmt.Errorf("unknown output format %d", f)
}

// WriteBraces writes res as {key=min/mean/max, ...} with keys in byte order.
func WriteBraces(w io.Writer, res agg.Result) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	bw.WriteByte('{')
	for i, key := range res.Keys() {
		if i > 0 {
			bw.WriteString(", ")
		}
		s := res[key]

		buf = append(buf[:0], key...)
		buf = append(buf, '=')
		buf = s.Min.AppendText(buf)
		buf = append(buf, '/')
		buf = s.Mean.AppendText(buf)
		buf = append(buf, '/')
		buf = s.Max.AppendText(buf)
		bw.Write(buf)
	}
	bw.WriteString("}\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to write results: %w", err)
	}
	return nil
}

// WriteTable renders res as an aligned text table.
func WriteTable(w io.Writer, res agg.Result) error {
	keys := res.Keys()
	data := make([][]string, len(keys))
	for i, key := range keys {
		s := res[key]
		data[i] = []string{key, s.Min.String(), s.Mean.String(), s.Max.String()}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Min", "Mean", "Max"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	table.AppendBulk(data)
	table.Render()
	return nil
}
