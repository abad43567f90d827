// Package satcam generates the audio a small satellite camera sends to the
// ground: SSTV pictures, PSK31 text and Morse, synthesized sample by sample
// into a double-buffered output.
package satcam
