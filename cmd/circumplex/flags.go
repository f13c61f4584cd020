package main

import (
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/cli"
	"github.com/at-ishikawa/circumplex/internal/exchange"
	"github.com/at-ishikawa/circumplex/internal/report"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

// positionValue is an optional "x,y" flag.
type positionValue struct {
	position *affect.Position
}

func (v *positionValue) Set(s string) error {
	p, err := cli.ParsePosition(s)
	if err != nil {
		return err
	}
	v.position = &p
	return nil
}

func (v *positionValue) String() string {
	if v.position == nil {
		return ""
	}
	return cli.FormatPosition(*v.position)
}

func (v *positionValue) Type() string {
	return "x,y"
}

// positionsValue collects repeated "x,y" flags in order.
type positionsValue struct {
	positions []affect.Position
}

func (v *positionsValue) Set(s string) error {
	p, err := cli.ParsePosition(s)
	if err != nil {
		return err
	}
	v.positions = append(v.positions, p)
	return nil
}

func (v *positionsValue) String() string {
	s := ""
	for i, p := range v.positions {
		if i > 0 {
			s += " "
		}
		s += cli.FormatPosition(p)
	}
	return s
}

func (v *positionsValue) Type() string {
	return "x,y"
}

// reportFormatValue restricts --format to md or pdf.
type reportFormatValue struct {
	format report.Format
}

func (v *reportFormatValue) Set(s string) error {
	f, err := report.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

func (v *reportFormatValue) String() string {
	return string(v.format)
}

func (v *reportFormatValue) Type() string {
	return "format"
}

var (
	_ pflag.Value = (*positionValue)(nil)
	_ pflag.Value = (*positionsValue)(nil)
	_ pflag.Value = (*reportFormatValue)(nil)
	_ pflag.Value = (*exchange.Format)(nil)
)

// addFilterFlags registers the flags that narrow which entries a command reads.
func addFilterFlags(flags *pflag.FlagSet, filter *tracker.Filter) {
	flags.IntVar(&filter.Days, "days", 0, "only entries from the last N days")
	flags.StringVar(&filter.Collection, "collection", "", "only entries in this collection ID")
	flags.StringVar(&filter.Tag, "tag", "", "only entries with this tag")
}
