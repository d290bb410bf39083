package fix

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// StdinPath names standard input in a file list.
const StdinPath = "-"

// Processor applies a Fixer to one field of delimited records, line by line.
type Processor struct {
	fixer Fixer
	opts  ProcessorOptions
}

// Stats counts what a Process run did.
type Stats struct {
	Lines   int
	Changed int
	// Short counts records with fewer fields than the selected one.
	Short int
}

// NewProcessor wraps fixer with record handling.
func NewProcessor(fixer Fixer, opts ...Option) (*Processor, error) {
	options := DefaultProcessorOptions
	for _, opt := range opts {
		opt.Apply(&options)
	}
	if fixer == nil {
		return nil, errors.New("processor needs a fixer")
	}
	if options.Delimiter == "" {
		return nil, errors.New("delimiter must not be empty")
	}
	if options.Field < 1 {
		return nil, fmt.Errorf("field must be 1 or greater, got %d", options.Field)
	}
	return &Processor{fixer: fixer, opts: options}, nil
}

// ApplyLine corrects the selected field of one record and reports whether
// the record changed. Records without the selected field pass through.
func (p *Processor) ApplyLine(line string) (string, bool) {
	fields := strings.Split(line, p.opts.Delimiter)
	idx := p.opts.Field - 1
	if idx >= len(fields) {
		log.Debugf("Record has %d fields, field %d left as is", len(fields), p.opts.Field)
		return line, false
	}

	fixed, changed := Correct(p.fixer, fields[idx])
	if !changed {
		return line, false
	}
	fields[idx] = fixed
	return strings.Join(fields, p.opts.Delimiter), true
}

// Process reads records from r and writes each corrected record to w
// followed by a newline. Cancellation is checked between lines.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	for {
		if err := ctx.Err(); err != nil {
			writer.Flush()
			return stats, err
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			writer.Flush()
			return stats, fmt.Errorf("read input: %w", readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		stats.Lines++
		if p.opts.Field > strings.Count(line, p.opts.Delimiter)+1 {
			stats.Short++
		}

		fixed, changed := p.ApplyLine(line)
		if changed {
			stats.Changed++
		}
		if _, err := writer.WriteString(fixed + "\n"); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("write output: %w", err)
	}
	return stats, nil
}

// ProcessFiles runs Process over each path in order. StdinPath reads stdin.
// An empty list means stdin alone. The first unreadable file stops the run.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string, stdin io.Reader, w io.Writer) (Stats, error) {
	if len(paths) == 0 {
		paths = []string{StdinPath}
	}

	var total Stats
	for _, path := range paths {
		stats, err := p.processPath(ctx, path, stdin, w)
		total.Lines += stats.Lines
		total.Changed += stats.Changed
		total.Short += stats.Short
		if err != nil {
			return total, err
		}
		log.Debugf("Processed %s: %d lines, %d changed", path, stats.Lines, stats.Changed)
	}
	return total, nil
}

func (p *Processor) processPath(ctx context.Context, path string, stdin io.Reader, w io.Writer) (Stats, error) {
	if path == StdinPath {
		return p.Process(ctx, stdin, w)
	}
	file, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open input %s: %w", path, err)
	}
	defer file.Close()

	stats, err := p.Process(ctx, file, w)
	if err != nil {
		return stats, fmt.Errorf("process %s: %w", path, err)
	}
	return stats, nil
}
