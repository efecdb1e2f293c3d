// Command zonecheck resolves locations and prints their hardiness zone,
// current season and frost dates as JSON lines.
//
// Usage:
//
//	go run ./cmd/zonecheck 78701 "Denver, CO" 98101
//	cat places.txt | go run ./cmd/zonecheck -date 2026-03-15
//
// Arguments are resolved in order; with no arguments each non-blank stdin line
// is a query.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/powerplant/plant-advisor/internal/domain"
)

// result is one output line.
type result struct {
	Query      string             `json:"query"`
	Label      string             `json:"label,omitempty"`
	Location   *domain.Location   `json:"location,omitempty"`
	Zone       string             `json:"zone,omitempty"`
	Season     domain.Season      `json:"season,omitempty"`
	FrostDates *domain.FrostDates `json:"frostDates,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("zonecheck", flag.ContinueOnError)
	date := fs.String("date", "", "evaluate seasons as of this date (YYYY-MM-DD) instead of today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	if *date != "" {
		at, err := time.Parse(time.DateOnly, *date)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
		clock = clockwork.NewFakeClockAt(at)
	}

	enc := json.NewEncoder(stdout)
	failed := 0

	emit := func(query string) error {
		r := check(query, clock.Now())
		if r.Error != "" {
			failed++
		}
		return enc.Encode(r)
	}

	if fs.NArg() > 0 {
		for _, q := range fs.Args() {
			if err := emit(q); err != nil {
				return err
			}
		}
	} else {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if err := emit(line); err != nil {
				return err
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d queries could not be resolved", failed)
	}
	return nil
}

func check(query string, now time.Time) result {
	loc, err := domain.ResolveLocation(query)
	if err != nil {
		return result{Query: query, Error: err.Error()}
	}
	advice := domain.AdviseAt(loc.HardinessZone, now)
	return result{
		Query:      query,
		Label:      loc.Describe(),
		Location:   &loc,
		Zone:       loc.HardinessZone,
		Season:     advice.Season,
		FrostDates: &advice.FrostDates,
	}
}
