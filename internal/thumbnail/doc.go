// Package thumbnail computes thumbnail geometry.
//
// Given the size of a decoded source image and a named layout rule it resolves the
// resample size, the letterbox padding and the centre crop of every thumbnail, and
// places a watermark overlay on one of nine anchors. Everything here is pure integer
// arithmetic: functions never block, never fail for positive inputs and are safe for
// concurrent use. Pixel work is done by a raster backend that consumes a Layout.
//
// All divisions truncate toward zero; there are no fractional pixels.
package thumbnail
