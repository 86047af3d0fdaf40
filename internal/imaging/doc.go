// Package imaging inspects and normalizes the image bytes returned by a
// generation provider before they are written to disk.
//
// Providers usually return PNG, but the hosted API serves whatever its upstream
// produced at the returned URL, which may be JPEG or WebP. NormalizePNG makes
// sure the file saved with a .png extension really is a PNG:
//
//   - PNG input is passed through byte for byte
//   - JPEG, GIF, WebP, BMP and TIFF input is decoded and re-encoded as PNG
//   - anything else is rejected with an error
//
// Describe produces the ImageInfo summary (dimensions, format, average color)
// reported alongside a successful generation.
//
// All functions are stateless and safe for concurrent use.
package imaging
