// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package output provides helpers for writing aligned, optionally
// colored tabular command output.
package output

import (
	"fmt"
	"io"

	"github.com/juju/ansiterm"
)

// TabWriter returns a new tab writer with the layout shared by all
// tabular formatters.
func TabWriter(writer io.Writer) *ansiterm.TabWriter {
	const (
		minwidth = 0
		tabwidth = 1
		padding  = 2
		padchar  = ' '
		flags    = 0
	)
	return ansiterm.NewTabWriter(writer, minwidth, tabwidth, padding, padchar, flags)
}

// Wrapper provides some helper functions for writing values out tab
// separated.
type Wrapper struct {
	*ansiterm.TabWriter
}

// Print writes each value followed by a tab.
func (w *Wrapper) Print(values ...interface{}) {
	for _, v := range values {
		fmt.Fprintf(w, "%v\t", v)
	}
}

// Printf writes the formatted value followed by a tab.
func (w *Wrapper) Printf(format string, values ...interface{}) {
	fmt.Fprintf(w, format+"\t", values...)
}

// Println writes many tab separated values finished with a newline.
func (w *Wrapper) Println(values ...interface{}) {
	for i, v := range values {
		if i != len(values)-1 {
			fmt.Fprintf(w, "%v\t", v)
		} else {
			fmt.Fprintf(w, "%v", v)
		}
	}
	fmt.Fprint(w, "\n")
}

// PrintColor writes the value out in the color context specified,
// followed by a tab.
func (w *Wrapper) PrintColor(ctx *ansiterm.Context, value interface{}) {
	if ctx != nil {
		ctx.Fprintf(w.TabWriter, "%v\t", value)
	} else {
		fmt.Fprintf(w, "%v\t", value)
	}
}

var (
	// ErrorHighlight is the color used for error states.
	ErrorHighlight = ansiterm.Foreground(ansiterm.Red)

	// WarningHighlight is the color used for things the user should
	// look at.
	WarningHighlight = ansiterm.Foreground(ansiterm.Yellow)

	// GoodHighlight is used to indicate good or success states.
	GoodHighlight = ansiterm.Foreground(ansiterm.Green)

	// InfoHighlight is  used to indicate transient, in-progress
	// states.
	InfoHighlight = ansiterm.Foreground(ansiterm.Cyan)
)
