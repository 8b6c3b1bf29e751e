package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pable/go-tf2-metrics/internal/model"
)

var (
	cPrompt = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
	cError  = color.New(color.FgRed, color.Bold)
	cHeader = color.New(color.FgCyan, color.Bold)
)

// categorise asks for the class and damage type of each weapon. An empty
// answer skips the weapon; "q" stops and keeps what was entered so far.
func categorise(in io.Reader, out io.Writer, weapons []string) ([]model.WeaponInfo, error) {
	scanner := bufio.NewScanner(in)

	cHeader.Fprintln(out, "Categorise weapons")
	cMuted.Fprintln(out, "answer with a name or number; empty skips, q quits")
	printChoices(out, "classes", model.Classes)
	printChoices(out, "damage types", model.DamageTypes)
	fmt.Fprintln(out)

	var rows []model.WeaponInfo
	for i, w := range weapons {
		cPrompt.Fprintf(out, "[%d/%d] %s\n", i+1, len(weapons), w)

		class, ok, quit := ask(scanner, out, "class", model.Classes)
		if quit {
			return rows, scanner.Err()
		}
		if !ok {
			continue
		}
		damage, ok, quit := ask(scanner, out, "damage", model.DamageTypes)
		if quit {
			return rows, scanner.Err()
		}
		if !ok {
			continue
		}
		rows = append(rows, model.WeaponInfo{Name: w, Class: class, DamageType: damage})
	}
	return rows, scanner.Err()
}

// ask re-prompts until the answer is one of choices, empty or "q".
func ask(scanner *bufio.Scanner, out io.Writer, label string, choices []string) (answer string, ok, quit bool) {
	for {
		cMuted.Fprintf(out, "  %s> ", label)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return "", false, true
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			return "", false, false
		case line == "q":
			return "", false, true
		}
		if choice, found := pick(line, choices); found {
			return choice, true, false
		}
		cError.Fprintf(out, "  unknown %s %q\n", label, line)
	}
}

func pick(answer string, choices []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}
	for _, c := range choices {
		if strings.EqualFold(c, answer) {
			return c, true
		}
	}
	return "", false
}

func printChoices(out io.Writer, title string, choices []string) {
	fmt.Fprintf(out, "  %s:", title)
	for i, c := range choices {
		fmt.Fprintf(out, " %d=%s", i+1, c)
	}
	fmt.Fprintln(out)
}
