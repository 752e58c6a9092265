// Package window shows a demo in a gogpu window.
//
// The demo renders offscreen on the window's own GPU device, so no second
// device is opened. Each frame is read back and uploaded to a window
// texture by a Presenter, which draws it at the top-left corner:
//
//	gfx.Target (render) -> image.RGBA -> window texture -> window
//
// Presenter only depends on gpucontext interfaces and can be used with any
// host that implements gpucontext.TextureDrawer.
package window
