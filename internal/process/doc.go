// Package process terminates the browser process tree left behind by the PDF renderer.
package process
