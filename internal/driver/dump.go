package driver

import (
	"github.com/cwbudde/pseudo9608/pkg/printer"
	"github.com/tidwall/sjson"
)

// DumpFrameJSON renders the root frame as a JSON object whose "frame"
// member maps each top-level name to its printed value (an empty object
// when there is no frame), for tooling that wants to diff or
// query a run's final state instead of scraping the text dump.
func DumpFrameJSON(res Result) (string, error) {
	doc := "{}"
	if res.Frame == nil {
		return doc, nil
	}
	var err error
	for _, name := range res.Frame.Names() {
		doc, err = sjson.Set(doc, "frame."+name, printer.Value(res.Frame.Get(name)))
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
