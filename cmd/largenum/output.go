package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/HidekiAI/hairev-utils/internal/observ"
)

// humanPrinter groups digits for summaries meant to be read, e.g. "4,771".
var humanPrinter = message.NewPrinter(language.English)

func humanCount(n any) string {
	return humanPrinter.Sprint(number.Decimal(n))
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%g", d.Seconds())
}

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText   = color.New(color.Faint).SprintFunc()
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
