package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = successColorFG
)

// Print writes a single diagnostic to the console, colored by severity.
func Print(d Diagnostic) {
	if d.Severity == SeverityError {
		errorStyleBG.Print(" " + d.Code_() + " ")
		errorColorFG.Println(" " + d.Pos.String() + ": " + d.Message)
	} else {
		warnStyleBG.Print(" " + d.Code_() + " ")
		warnColorFG.Println(" " + d.Pos.String() + ": " + d.Message)
	}
}

// PrintAll prints every diagnostic in a bag, in the order recorded.
func PrintAll(b *Bag) {
	for _, d := range b.Diagnostics() {
		Print(d)
	}
}

// Header prints the compiler banner before the first phase begins.
func Header(moduleName, targetArch string) {
	fmt.Print("tsppc ")
	infoColorFG.Print("module " + moduleName)
	fmt.Print(" -- target: ")
	infoColorFG.Println(targetArch)
}

var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
)

const maxPhaseLength = len("Generating")

// BeginPhase starts a spinner announcing the start of a pipeline phase.
func BeginPhase(phase string) {
	currentPhase = phase
	text := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: successStyleBG, Text: "Done"},
	}
	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: errorStyleBG, Text: "Fail"},
	}

	phaseSpinner.Start(text)
	phaseStartTime = time.Now()
}

// EndPhase stops the current phase's spinner, reporting success or failure.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}
	pad := strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
	if success {
		phaseSpinner.Success(currentPhase+pad, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(currentPhase + pad)
	}
	phaseSpinner = nil
}

// Summary prints the final tally of errors and warnings across a run.
func Summary(success bool, errorCount, warningCount int) {
	fmt.Print("\n")
	if success {
		successColorFG.Print("build succeeded ")
	} else {
		errorColorFG.Print("build failed ")
	}

	fmt.Print("(")
	printCount(errorCount, "error", "errors", errorColorFG)
	fmt.Print(", ")
	printCount(warningCount, "warning", "warnings", warnColorFG)
	fmt.Println(")")
}

func printCount(n int, singular, plural string, style pterm.Color) {
	if n == 0 {
		successColorFG.Print(0)
		fmt.Print(" " + plural)
		return
	}
	style.Print(n)
	if n == 1 {
		fmt.Print(" " + singular)
	} else {
		fmt.Print(" " + plural)
	}
}
