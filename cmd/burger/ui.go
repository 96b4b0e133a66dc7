package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// printer writes decorated lines; color is off when the output is not a terminal
type printer struct {
	w     io.Writer
	color bool
}

func (p printer) line(color, mark, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if p.color {
		fmt.Fprintf(p.w, "%s%s %s%s\n", color, mark, msg, colorReset)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, msg)
}

func (p printer) Info(format string, a ...interface{}) {
	p.line(colorBlue, "ℹ", format, a...)
}

func (p printer) Success(format string, a ...interface{}) {
	p.line(colorGreen, "✓", format, a...)
}

func (p printer) Warning(format string, a ...interface{}) {
	p.line(colorYellow, "⚠", format, a...)
}

func (p printer) Error(format string, a ...interface{}) {
	p.line(colorRed, "✗", format, a...)
}

func (p printer) Header(title string) {
	if p.color {
		fmt.Fprintf(p.w, "\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
		return
	}
	fmt.Fprintf(p.w, "\n=== %s ===\n", title)
}

func (p printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

// label turns a status key such as "done" or "pending" into a display label
func label(key string) string {
	if key == "" {
		return "-"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
