package main

import (
	"fmt"

	"github.com/Trantu1102/NB-TCCS/crawl"
)

// Run executes the images command. A page that cannot be fetched counts as
// having no images.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	count := crawl.CountImagesAt(deps.Ctx, deps.Fetcher, deps.Counter, c.URL, c.Type)

	fmt.Fprintf(deps.Stdout, "Khai thác: %d\n", count.KhaiThac)
	fmt.Fprintf(deps.Stdout, "Tư liệu:   %d\n", count.TuLieu)
	fmt.Fprintf(deps.Stdout, "Tác giả:   %d\n", count.TacGia)
	fmt.Fprintf(deps.Stdout, "Tổng:      %d\n", count.Total())
	return nil
}
