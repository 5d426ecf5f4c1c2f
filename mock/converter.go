package mock

import tccs "github.com/Trantu1102/NB-TCCS"

var _ tccs.Converter = (*Converter)(nil)

// Converter is a mock implementation of tccs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
