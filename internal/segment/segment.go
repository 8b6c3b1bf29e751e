// Package segment locates the lines of the current match in a console log.
package segment

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoMatch is returned when the log holds no match for the user.
var ErrNoMatch = errors.New("no match found in log")

// Segmenter selects the lines belonging to the current match.
type Segmenter interface {
	Segment(lines []string) ([]string, error)
}

// LatestGame selects every line from the user's last "<user> connected" line
// to the end of the log.
type LatestGame struct {
	User string
}

func (g LatestGame) Segment(lines []string) ([]string, error) {
	if g.User == "" {
		return nil, fmt.Errorf("segment latest game: %w: user not set", ErrNoMatch)
	}
	marker := g.User + " connected"
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == marker {
			return lines[i:], nil
		}
	}
	return nil, ErrNoMatch
}

// Source supplies the full text of the log, one entry per line.
type Source interface {
	ReadLines(ctx context.Context) ([]string, error)
}

// FileSource reads a console log file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) ReadLines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", s.Path, err)
	}
	return lines, nil
}

// maxLineSize bounds a single log line; longer lines are skipped.
const maxLineSize = 1 << 20

// ReadLines splits r into lines with trailing whitespace removed. Invalid
// UTF-8 sequences are dropped, and so are lines longer than maxLineSize.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		lines   []string
		buf     []byte
		tooLong bool
	)
	for n := 0; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong, buf = true, buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if isPrefix {
			continue
		}
		if !tooLong {
			line := strings.ToValidUTF8(string(buf), "")
			lines = append(lines, strings.TrimRight(line, " \t\r"))
		}
		buf, tooLong = buf[:0], false
	}
	return lines, nil
}
