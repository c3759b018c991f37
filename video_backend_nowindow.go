//go:build headless

package main

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless")
}

func NewEbitenOutput() (VideoOutput, error) {
	return NewHeadlessVideoOutput(), nil
}
