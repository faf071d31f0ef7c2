// Package pipeline runs Normalize and Validate over batches of records with
// continue-on-error semantics: every record gets a Result, and a failing
// record never stops the batch.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/ucschema"
)

// Result is the outcome for one input record.
type Result struct {
	Index      int
	ID         string
	Document   ucschema.Document // normalized (or original) document; nil when Err is set
	Violations ucschema.Violations
	Err        error // malformed or non-object record
}

// Valid reports whether the record produced a document without violations.
func (r Result) Valid() bool { return r.Err == nil && len(r.Violations) == 0 }

// Report collects the results of one batch in input order.
type Report struct {
	Mode       ucschema.Mode
	Normalized bool
	Results    []Result
}

// ValidCount returns the number of valid records.
func (r Report) ValidCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Valid() {
			n++
		}
	}
	return n
}

// InvalidCount returns the number of records with violations or errors.
func (r Report) InvalidCount() int { return len(r.Results) - r.ValidCount() }

// Documents returns every produced document in input order, including ones
// with violations. Records that failed with an error are skipped.
func (r Report) Documents() []ucschema.Document {
	out := make([]ucschema.Document, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Document != nil {
			out = append(out, res.Document)
		}
	}
	return out
}

// Processor normalizes and validates records.
type Processor struct {
	logger        *logrus.Logger
	mode          ucschema.Mode
	normalize     bool
	normalizeOpts []ucschema.NormalizeOption
	workers       int
}

// Option configures a Processor.
type Option func(*Processor)

// WithMode sets the validation mode (default Lenient).
func WithMode(m ucschema.Mode) Option { return func(p *Processor) { p.mode = m } }

// WithNormalize toggles the Normalize step (default on).
func WithNormalize(enabled bool) Option { return func(p *Processor) { p.normalize = enabled } }

// WithNormalizeOptions forwards options to ucschema.Normalize.
func WithNormalizeOptions(opts ...ucschema.NormalizeOption) Option {
	return func(p *Processor) { p.normalizeOpts = append(p.normalizeOpts, opts...) }
}

// WithWorkers processes up to n records concurrently (default 1). Result
// order always follows input order. An id generator passed through
// WithNormalizeOptions must be safe for concurrent use when n > 1.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewProcessor creates a Processor. A nil logger discards output.
func NewProcessor(logger *logrus.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	p := &Processor{logger: logger, normalize: true, workers: 1}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process handles every record. It only returns an error when ctx is done;
// the report then holds the results gathered so far.
func (p *Processor) Process(ctx context.Context, records []any) (Report, error) {
	return p.ProcessWithFindings(ctx, records, nil)
}

// ProcessWithFindings is Process with violations found before decoding (such
// as duplicate keys), keyed by record index. They are reported ahead of the
// schema violations of their record.
func (p *Processor) ProcessWithFindings(ctx context.Context, records []any, findings map[int]ucschema.Violations) (Report, error) {
	rep := Report{Mode: p.mode, Normalized: p.normalize}
	var err error
	if p.workers > 1 && len(records) > 1 {
		rep.Results, err = p.processParallel(ctx, records, findings)
	} else {
		rep.Results, err = p.processSerial(ctx, records, findings)
	}
	if err != nil {
		return rep, err
	}
	p.logger.WithFields(logrus.Fields{
		"mode":    p.mode.String(),
		"total":   len(rep.Results),
		"valid":   rep.ValidCount(),
		"invalid": rep.InvalidCount(),
	}).Info("batch processed")
	return rep, nil
}

func (p *Processor) processSerial(ctx context.Context, records []any, findings map[int]ucschema.Violations) ([]Result, error) {
	out := make([]Result, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, p.processOne(i, rec, findings[i]))
	}
	return out, nil
}

// processParallel fans records out to a bounded errgroup. On cancellation
// only the records that completed are returned, in input order.
func (p *Processor) processParallel(ctx context.Context, records []any, findings map[int]ucschema.Violations) ([]Result, error) {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)

	results := make([]Result, len(records))
	done := make([]bool, len(records))
	for i, rec := range records {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.processOne(i, rec, findings[i])
			done[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		out := make([]Result, 0, len(records))
		for i, ok := range done {
			if ok {
				out = append(out, results[i])
			}
		}
		return out, err
	}
	return results, nil
}

func (p *Processor) processOne(i int, rec any, pre ucschema.Violations) Result {
	res := Result{Index: i}
	log := p.logger.WithField("index", i)

	doc, ok := rec.(map[string]any)
	if !ok {
		_, err := ucschema.Validate(rec, p.mode)
		if err == nil {
			err = fmt.Errorf("unsupported record type %T", rec)
		}
		res.Err = err
		log.WithError(err).Error("skipping record")
		return res
	}
	if p.normalize {
		nd, err := ucschema.Normalize(doc, p.normalizeOpts...)
		if err != nil {
			res.Err = err
			log.WithError(err).Error("skipping record")
			return res
		}
		doc = nd
	}
	res.Document = doc
	res.ID, _ = doc["id"].(string)
	log = log.WithField("id", res.ID)

	vs, err := ucschema.Validate(doc, p.mode)
	if err != nil {
		res.Err = err
		log.WithError(err).Error("skipping record")
		return res
	}
	if len(pre) > 0 {
		vs = ucschema.AppendViolations(append(ucschema.Violations(nil), pre...), vs...)
	}
	res.Violations = vs
	if len(vs) > 0 {
		log.WithField("violations", vs.Messages()).Warn("use case has validation errors")
		return res
	}
	log.Debug("use case valid")
	return res
}
