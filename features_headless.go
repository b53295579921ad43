//go:build headless

package main

func init() {
	compiledFeatures = append(compiledFeatures, "visualize: headless")
}
