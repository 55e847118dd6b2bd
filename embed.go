// Package crmclean provides embedded runtime resources: the sample contact
// list written by "crmclean sample".
package crmclean

import (
	"embed"
	"io/fs"
)

//go:embed samples/contacts_raw.txt
var rawSamples embed.FS

// Samples is the embedded samples filesystem with the "samples/" prefix stripped.
var Samples = mustSub(rawSamples, "samples")

// SampleName is the file name of the embedded sample contact list.
const SampleName = "contacts_raw.txt"

// SampleContacts returns the embedded sample contact list.
func SampleContacts() []byte {
	data, err := fs.ReadFile(Samples, SampleName)
	if err != nil {
		panic(err)
	}
	return data
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
