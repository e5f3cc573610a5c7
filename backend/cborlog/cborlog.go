package cborlog

import (
	"io"

	"github.com/urso/logdispatch/backend/enclog"
	"github.com/urso/logdispatch/backend/structlog"

	"github.com/elastic/go-structform"
	"github.com/elastic/go-structform/cborl"
	"github.com/elastic/go-structform/gotype"
)

func New(out enclog.Output, fields []structlog.Field, opts ...gotype.FoldOption) (*structlog.Logger, error) {
	return enclog.New(out, mkEncoder, fields, opts...)
}

func mkEncoder(out io.Writer) structform.Visitor {
	return cborl.NewVisitor(out)
}
