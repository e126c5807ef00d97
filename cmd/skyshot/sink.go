package main

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// Sink receives rendered frames.
type Sink interface {
	Add(frame int, img *image.RGBA) error
	Close() error
}

// PNGSink writes one PNG per frame into a directory.
type PNGSink struct {
	dir string
}

func NewPNGSink(dir string) *PNGSink {
	return &PNGSink{dir: dir}
}

func (s *PNGSink) Add(frame int, img *image.RGBA) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", frame))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *PNGSink) Close() error { return nil }

// GIFSink collects frames and writes one animated GIF on Close.
type GIFSink struct {
	path  string
	delay int // 1/100 秒
	anim  gif.GIF
}

// NewGIFSink creates a GIF writer; every is the frame stride at 60 fps.
func NewGIFSink(path string, every int) *GIFSink {
	if every <= 0 {
		every = 1
	}
	return &GIFSink{
		path:  path,
		delay: max(1, int(math.Round(float64(every)*100/60))),
	}
}

func (s *GIFSink) Add(frame int, img *image.RGBA) error {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	s.anim.Image = append(s.anim.Image, p)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return f.Close()
}

// circlePath 模拟指针沿椭圆移动，约 4 秒一圈
func circlePath(frame, w, h int) (float64, float64) {
	a := float64(frame) / 240 * 2 * math.Pi
	return float64(w)/2 + math.Cos(a)*float64(w)/3, float64(h)/2 + math.Sin(a)*float64(h)/3
}
