package jsonlog

import (
	"io"

	"github.com/urso/logdispatch/backend/enclog"
	"github.com/urso/logdispatch/backend/structlog"

	"github.com/elastic/go-structform"
	"github.com/elastic/go-structform/gotype"
	"github.com/elastic/go-structform/json"
)

func New(out enclog.Output, fields []structlog.Field, opts ...gotype.FoldOption) (*structlog.Logger, error) {
	return enclog.New(out, mkEncoder, fields, opts...)
}

func mkEncoder(out io.Writer) structform.Visitor {
	return json.NewVisitor(out)
}
