package objlog

import (
	"github.com/urso/logdispatch/backend/structlog"

	structform "github.com/elastic/go-structform"
	"github.com/elastic/go-structform/gotype"
)

type Output interface {
	Log(obj map[string]interface{})
}

type collector struct {
	out      Output
	unfolder *gotype.Unfolder
	active   map[string]interface{}
}

type objOutput struct {
	log func(map[string]interface{})
}

func New(out Output, fields []structlog.Field, opts ...gotype.FoldOption) (*structlog.Logger, error) {
	return structlog.New(&collector{out: out}, fields, opts...)
}

func (c *collector) Reset() {
	c.active = nil
	c.unfolder, _ = gotype.NewUnfolder(nil)
}

func (c *collector) Visitor() structform.Visitor {
	if c.unfolder == nil {
		c.Reset()
	}
	return c.unfolder
}

func (c *collector) Begin() {
	c.unfolder.SetTarget(&c.active)
}

func (c *collector) End() {
	val := c.active
	c.active = nil
	c.out.Log(val)
}

// Call creates an Output passing each record to fn.
func Call(fn func(map[string]interface{})) Output {
	return &objOutput{log: fn}
}

func (o *objOutput) Log(obj map[string]interface{}) { o.log(obj) }
