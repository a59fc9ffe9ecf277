// Package thumbs materializes thumbnails for a collection snapshot in
// the background.
//
// A Materializer runs one generation at a time: opening a new folder
// starts a new generation and any older run still decoding is
// discarded in full when it finishes. Readers always see a complete
// set, either the previous run's or the new one's. Decoding goes
// through libvips when available and falls back to pure-Go decoders,
// and encoded thumbnails are cached on disk keyed by source path.
package thumbs
