package ilerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors aggregates the errors found while reading a document, so that
// all of them can be reported at once.
type Errors struct {
	errs []CodedError
}

func (r *Errors) With(err ...CodedError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []CodedError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Error lists every error, one per line.
func (r *Errors) Error() string {
	lines := make([]string, len(r.Errors()))
	for i, e := range r.Errors() {
		lines[i] = FormatWithCode(e)
	}
	return strings.Join(lines, "\n")
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
				slog.Attr{
					Key:   "at",
					Value: slog.StringValue(v.Location().String()),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
