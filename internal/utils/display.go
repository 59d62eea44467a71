package utils

import (
	"errors"
	"math"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window

	xScreen *xproto.ScreenInfo
)

const referenceDPI = 96.0

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	xScreen = setup.DefaultScreen(XConn)
	XRoot = xScreen.Root
	return nil
}

// CloseX11 drops the shared X connection, if any.
func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
		xScreen = nil
	}
}

// X11DevicePixelRatio derives a device pixel ratio from the default screen's
// physical size, quantised to quarter steps the way browsers report it.
func X11DevicePixelRatio() (float64, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 1, err
		}
	}

	reply, err := xproto.GetGeometry(XConn, xproto.Drawable(XRoot)).Reply()
	if err != nil {
		return 1, err
	}

	return PixelRatioFromGeometry(float64(reply.Width), float64(xScreen.WidthInMillimeters))
}

// PixelRatioFromGeometry converts a screen width in pixels and millimetres into a
// pixel ratio relative to 96 DPI.
func PixelRatioFromGeometry(widthPx, widthMM float64) (float64, error) {
	if widthPx <= 0 || widthMM <= 0 {
		return 1, errors.New("screen reports no physical size")
	}

	dpi := widthPx / (widthMM / 25.4)
	ratio := math.Round(dpi/referenceDPI*4) / 4
	if ratio < 1 {
		ratio = 1
	}
	return ratio, nil
}
