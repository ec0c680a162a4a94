package main

import "github.com/atotto/clipboard"

// copyToClipboard puts text on the system clipboard. Callers treat a
// failure as a degraded path, not a fatal one.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
