// Package imagetypes classifies files by extension. The catalog filters
// directory scans through a configurable ExtensionSet; the default set
// covers the image formats the thumbnail decoders understand.
package imagetypes
