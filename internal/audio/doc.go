// Package audio plays the optional chime when a toast appears.
// It uses the beep library to decode WAV, OGG and MP3 files; with no file
// configured it synthesises a short tone.
package audio
