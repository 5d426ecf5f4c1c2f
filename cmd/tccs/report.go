package main

import (
	"fmt"
	"io"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/excelize"
	"github.com/Trantu1102/NB-TCCS/fs"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	articles, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	output := c.Output
	if output == "" {
		output = excelize.ReportName(deps.Now())
	}

	if err := fs.WriteFile(output, func(w io.Writer) error {
		return deps.Report.WriteReport(w, articles)
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Đã lưu báo cáo %d bài: %s\n", len(articles), output)
	return nil
}
