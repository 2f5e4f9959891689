package main

import (
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/itera/internal/schedule"
)

// BoxFlag is a box type given on the command line.
type BoxFlag schedule.BoxType

// Set implements pflag.Value.
func (b *BoxFlag) Set(v string) error {
	box, err := schedule.ParseBoxType(v)
	if err != nil {
		return err
	}
	*b = BoxFlag(box)
	return nil
}

// String implements pflag.Value.
func (b *BoxFlag) String() string {
	if b == nil {
		return ""
	}
	return string(*b)
}

// Type implements pflag.Value.
func (b *BoxFlag) Type() string {
	return "BoxType"
}

// AnchorFlag is a first-due anchor given on the command line.
type AnchorFlag schedule.Anchor

// Set implements pflag.Value.
func (a *AnchorFlag) Set(v string) error {
	anchor, err := schedule.ParseAnchor(v)
	if err != nil {
		return err
	}
	*a = AnchorFlag(anchor)
	return nil
}

// String implements pflag.Value.
func (a *AnchorFlag) String() string {
	if a == nil {
		return ""
	}
	return string(*a)
}

// Type implements pflag.Value.
func (a *AnchorFlag) Type() string {
	return "Anchor"
}

var (
	_ pflag.Value = (*BoxFlag)(nil)
	_ pflag.Value = (*AnchorFlag)(nil)
)
