// Package subtitles holds subtitle format knowledge: codec classification
// (text versus image based tracks), standalone file format sniffing, and
// dialogue sampling that strips SRT/ASS structure down to the spoken text
// used for language detection.
package subtitles
