package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghuser/itemboard/services/item/application/client"
)

type output struct {
	format string
	w      io.Writer
}

func (o *output) items(items []client.Item) error {
	if o.format == "json" {
		return o.json(items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(o.w, "No items yet")
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(o.w, "%d\t%s\n", it.ID, it.Name); err != nil {
			return err
		}
	}
	return nil
}

func (o *output) item(it client.Item) error {
	if o.format == "json" {
		return o.json(it)
	}
	_, err := fmt.Fprintf(o.w, "created %d\t%s\n", it.ID, it.Name)
	return err
}

func (o *output) json(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
