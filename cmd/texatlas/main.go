// texatlas - pack a directory of per-block PNG textures into one
// fixed-tile atlas image, nearest-neighbor resizing mismatched inputs
// to a common tile size, for mesh.BlockInfo's per-face TexID lookup.
//
// Usage: go run ./cmd/texatlas -dir textures/ -tile 16 -out atlas.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	ximage "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

func main() {
	dir := flag.String("dir", "textures", "directory of per-block PNG files")
	tile := flag.Int("tile", 16, "output tile size in pixels, both axes")
	out := flag.String("out", "atlas.png", "output atlas PNG path")
	flag.Parse()

	if err := run(*dir, *tile, *out); err != nil {
		fmt.Fprintf(os.Stderr, "texatlas: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, tile int, out string) error {
	paths, err := texturePaths(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PNG files found in %s", dir)
	}

	// Decoding is the I/O- and CPU-bound step; run it across paths
	// concurrently and let errgroup carry the first decode failure
	// back out, rather than serializing disk reads for no reason.
	decoded := make([]image.Image, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			src, err := decodePNG(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			decoded[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	atlas := image.NewRGBA(image.Rect(0, 0, tile, tile*len(paths)))

	for i, src := range decoded {
		tileRect := image.Rect(0, i*tile, tile, (i+1)*tile)
		if src.Bounds().Dx() == tile && src.Bounds().Dy() == tile {
			draw.Draw(atlas, tileRect, src, src.Bounds().Min, draw.Src)
			continue
		}

		// Nearest-neighbor keeps hard block-texture edges crisp,
		// unlike the smoothing a bilinear scaler would introduce.
		ximage.NearestNeighbor.Scale(atlas, tileRect, src, src.Bounds(), ximage.Src, nil)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, atlas); err != nil {
		return err
	}
	fmt.Printf("wrote %d tiles (%dx%d each) to %s\n", len(paths), tile, tile, out)
	return nil
}

// texturePaths lists dir's *.png files sorted by name, so texture id
// N always maps to the N-th tile in the atlas deterministically.
func texturePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".png" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
