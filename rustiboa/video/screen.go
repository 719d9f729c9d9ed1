package video

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

const renderScale = 3

// Screen is an SDL2-backed render target: an alternative to the terminal
// shell for hosts that want a real window instead of block characters.
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	fb       []uint32
}

// NewScreen opens an SDL2 window sized to the Game Boy's 160x144 output,
// scaled up for visibility.
func NewScreen() (*Screen, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow("rustiboa",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		FramebufferWidth*renderScale,
		FramebufferHeight*renderScale,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	return &Screen{
		window:   window,
		renderer: renderer,
		fb:       make([]uint32, FramebufferSize),
	}, nil
}

// Draw presents one frame's worth of shade indices to the window.
func (s *Screen) Draw(fb *FrameBuffer) error {
	shades := fb.Shades()
	for i, shade := range shades {
		s.fb[i] = uint32(ByteToColor(shade))
	}

	surface, err := sdl.CreateRGBSurfaceFrom(
		unsafe.Pointer(&s.fb[0]),
		FramebufferWidth,
		FramebufferHeight,
		32,
		4*FramebufferWidth,
		0xFF000000,
		0x00FF0000,
		0x0000FF00,
		0x000000FF)
	if err != nil {
		return err
	}
	defer surface.Free()

	tex, err := s.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return err
	}
	defer tex.Destroy()

	s.renderer.Clear()
	s.renderer.Copy(tex, nil, nil)
	s.renderer.Present()
	return nil
}

// PollQuit reports whether the user closed the window.
func (s *Screen) PollQuit() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			return true
		}
	}
	return false
}

// Destroy releases the window and renderer.
func (s *Screen) Destroy() {
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
