package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// detailWidth is where free-form detail cells wrap.
const detailWidth = 72

type column struct {
	title string
	align text.Align
	// maxWidth soft-wraps the cell at word boundaries when positive.
	maxWidth int
}

var (
	stepColumns = []column{
		{title: "Step"},
		{title: "Status"},
		{title: "Duration", align: text.AlignRight},
		{title: "Detail", maxWidth: detailWidth},
	}
	checkColumns = []column{
		{title: "Check"},
		{title: "Status"},
		{title: "Detail", maxWidth: detailWidth},
	}
)

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		header = append(header, col.title)
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
		}
		if col.maxWidth > 0 {
			cfg.WidthMax = col.maxWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
