// Package all links every raster backend into the binary.
package all

import (
	_ "image-thumbnailer/internal/raster/bildbackend"
	_ "image-thumbnailer/internal/raster/drawbackend"
	_ "image-thumbnailer/internal/raster/imagingbackend"
)
