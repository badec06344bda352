package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// Column widths never shrink below these
var streamMinWidths = []int{12, 16, 10, 12}

const maxColumnWidth = 60

// renderTable draws a rounded box table. Widths fit the widest cell within
// [min, maxColumnWidth]; cellStyles holds one style per column.
func renderTable(headers []string, minWidths []int, rows [][]string, cellStyles []lipgloss.Style) string {
	widths := make([]int, len(headers))
	for i := range headers {
		widths[i] = max(minWidths[i], runewidth.StringWidth(headers[i]))
		for _, row := range rows {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
		widths[i] = min(widths[i], maxColumnWidth)
	}

	border := func(left, mid, right string) string {
		var sb strings.Builder
		sb.WriteString(BorderStyle.Render(left))
		for i, w := range widths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
			if i < len(widths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
		return sb.String()
	}

	var sb strings.Builder

	sb.WriteString(border(TopLeft, TopT, TopRight))

	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	sb.WriteString(border(LeftT, Cross, RightT))

	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, cell := range row {
			sb.WriteString(cellStyles[i].Render(" " + padRight(cell, widths[i]) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(border(BottomLeft, BottomT, BottomRight))

	return sb.String()
}

// PrintStreamsTable writes log streams as a box table followed by a count
func PrintStreamsTable(w io.Writer, streams []pkgtypes.LogStream) {
	headers := []string{"Name", "Last Event", "Stored", "Upload Sequence Token"}

	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		lastEvent := ""
		if !s.LastEventTimestamp.IsZero() {
			lastEvent = s.LastEventTimestamp.Local().Format("2006-01-02 15:04:05")
		}
		token := s.UploadSequenceToken
		if token == "" {
			token = "-"
		}
		rows = append(rows, []string{s.Name, lastEvent, formatBytes(s.StoredBytes), token})
	}

	cellStyles := []lipgloss.Style{NameStyle, MutedStyle, MutedStyle, TokenStyle}

	fmt.Fprint(w, renderTable(headers, streamMinWidths, rows, cellStyles))
	fmt.Fprintf(w, "  %d streams\n", len(streams))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
