package contact

import "strings"

// Skip describes one input line that produced no output Record.
type Skip struct {
	Line   int // 1-based line number
	Text   string
	Reason SkipReason
}

// SkipCallback is invoked for every excluded line, in line order for parse
// rejections followed by duplicates.
type SkipCallback func(Skip)

// Result is the outcome of a pipeline run.
type Result struct {
	Records []Record
	Skipped []Skip
	Lines   int
}

// Pipeline parses, validates and deduplicates contact text.
// A Pipeline holds no state between runs.
type Pipeline struct {
	onSkip SkipCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSkipCallback sets a function notified of each excluded line.
func WithSkipCallback(fn SkipCallback) Option {
	return func(p *Pipeline) {
		p.onSkip = fn
	}
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clean runs the default pipeline over text and returns the surviving records.
func Clean(text string) []Record {
	return NewPipeline().Run(text).Records
}

// Run parses each line of text, drops lines that yield no record and then
// removes duplicate emails, keeping first occurrences.
func (p *Pipeline) Run(text string) Result {
	lines := splitLines(text)

	var (
		parsed  []Record
		lineNos []int
		skipped []Skip
	)
	for i, line := range lines {
		r, reason := parseLine(line)
		if reason != "" {
			skipped = append(skipped, Skip{Line: i + 1, Text: line, Reason: reason})
			continue
		}
		parsed = append(parsed, r)
		lineNos = append(lineNos, i)
	}

	records, dropped := dedupe(parsed)
	for _, idx := range dropped {
		n := lineNos[idx]
		skipped = append(skipped, Skip{Line: n + 1, Text: lines[n], Reason: SkipDuplicate})
	}

	if p.onSkip != nil {
		for _, s := range skipped {
			p.onSkip(s)
		}
	}

	return Result{Records: records, Skipped: skipped, Lines: len(lines)}
}

// splitLines splits on "\n", "\r\n" and "\r". A trailing line break does not
// start an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
