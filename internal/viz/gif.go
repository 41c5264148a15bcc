package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	gifCellW = 8
	gifCellH = 16
)

// GIFRecorder turns canvas snapshots into animation frames.
type GIFRecorder struct {
	frames []*image.Paletted
	Delay  int
}

func NewGIFRecorder() *GIFRecorder {
	return &GIFRecorder{Delay: 2}
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

// Capture rasterises every lit braille dot as a block tinted by its cell.
func (g *GIFRecorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*gifCellW, c.Height*gifCellH), palette.Plan9)
	dotW, dotH := gifCellW/2, gifCellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == brailleBlank {
				continue
			}
			t := c.Tint[row][col]
			fill := color.RGBA{channel(t[0] * tintGain), channel(t[1] * tintGain), channel(t[2] * tintGain), 255}
			if fill.R == 0 && fill.G == 0 && fill.B == 0 {
				fill = color.RGBA{255, 255, 255, 255}
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c.Grid[row][col]&rune(pixelMap[dy][dx]) == 0 {
						continue
					}
					baseX, baseY := col*gifCellW+dx*dotW, row*gifCellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.Set(baseX+px, baseY+py, fill)
						}
					}
				}
			}
		}
	}
	g.frames = append(g.frames, img)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func (g *GIFRecorder) Reset() { g.frames = g.frames[:0] }
