package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/reading"
	"github.com/ayusman/hastarekha/internal/store"
)

func (o *rootOptions) printResult(w io.Writer, res *app.Result) error {
	if o.format == formatText {
		return writeText(w, res)
	}
	return writeJSON(w, res)
}

func (o *rootOptions) printHistory(w io.Writer, readings []*store.Reading) error {
	if o.format != formatText {
		return writeJSON(w, readings)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tAGE\tGENDER\tFOCUS\tSHAPE\tSOURCE")
	for _, r := range readings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Age, r.Gender, r.Focus, r.Shape, r.Source)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeText(w io.Writer, res *app.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Reading %s\n", res.ID)
	fmt.Fprintf(&b, "Age %s, gender %s, focus %s\n", res.Context.Age, res.Context.Gender, res.Context.Focus)
	if res.Source == app.SourceSimulated {
		fmt.Fprintf(&b, "Simulated palm (%s)\n", res.Fallback)
	}
	fmt.Fprintf(&b, "Palm: %s, fingers %s\n", res.Features.Shape, strings.ToLower(string(res.Features.Spacing)))

	b.WriteString("\nKey findings\n")
	for _, f := range res.Reading.KeyFindings {
		fmt.Fprintf(&b, "  - %s\n", f)
	}

	for _, d := range reading.Domains {
		text, ok := res.Reading.Readings[d]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n  %s\n", strings.ToUpper(string(d)), text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
