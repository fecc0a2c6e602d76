package source

import (
	"context"
	"log/slog"

	"github.com/infiotinc/gqlsource/query"
)

// Executor runs a built query and returns the decoded data envelope.
type Executor interface {
	Execute(ctx context.Context, doc *query.Document) (map[string]interface{}, error)
}

type ExecutorFunc func(ctx context.Context, doc *query.Document) (map[string]interface{}, error)

func (f ExecutorFunc) Execute(ctx context.Context, doc *query.Document) (map[string]interface{}, error) {
	return f(ctx, doc)
}

// RecordStream yields the records of one execution. The query runs on the
// first call to Next. A stream is single pass: once drained, failed or
// closed it stays exhausted and never executes again.
//
//	for s.Next() {
//		rec := s.Get()
//	}
//	if err := s.Err(); err != nil {
//	}
type RecordStream struct {
	ctx      context.Context
	exec     Executor
	doc      *query.Document
	dataKey  string
	path     *Path
	reporter Reporter
	logger   *slog.Logger

	started   bool
	exhausted bool
	items     []interface{}
	pos       int
	cur       Record
	err       error
}

func (s *RecordStream) Next() bool {
	if s.exhausted {
		return false
	}

	if !s.started {
		s.started = true
		if err := s.execute(); err != nil {
			s.fail(err)
			return false
		}
	}

	if err := s.ctx.Err(); err != nil {
		s.err = err
		s.finish()
		return false
	}

	for s.pos < len(s.items) {
		i := s.pos
		s.pos++

		rec, err := Normalize(s.items[i])
		if err != nil {
			s.logger.Debug("skipping record", "query", s.doc.Name, "index", i, "error", err)
			continue
		}

		s.cur = rec
		return true
	}

	s.finish()
	return false
}

// Get returns the record of the last successful Next.
func (s *RecordStream) Get() Record {
	return s.cur
}

// Err returns the error that ended the stream, nil when it ran to the end.
func (s *RecordStream) Err() error {
	return s.err
}

func (s *RecordStream) Exhausted() bool {
	return s.exhausted
}

// Close releases the response. A stream closed before its first Next
// never executes.
func (s *RecordStream) Close() {
	s.finish()
}

func (s *RecordStream) execute() error {
	payload, err := s.exec.Execute(s.ctx, s.doc)
	if err != nil {
		return &QueryExecutionError{Query: s.doc.Name, Err: err}
	}

	if s.path != nil {
		s.items, err = s.path.Collect(payload)
		if err != nil {
			return &QueryExecutionError{Query: s.doc.Name, Err: err}
		}
	} else {
		s.items = Extract(payload, s.doc.Name, s.dataKey)
	}

	s.logger.Debug("query executed", "query", s.doc.Name, "records", len(s.items))

	return nil
}

func (s *RecordStream) fail(err error) {
	s.err = err
	s.reporter.Report(err.Error())
	s.finish()
}

func (s *RecordStream) finish() {
	s.exhausted = true
	s.items = nil
	s.cur = nil
}
