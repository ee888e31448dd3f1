// Package x11 manages the X server connection used for RandR event
// subscriptions.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// ErrConnectionClosed is returned by WaitEvent once the X connection is
// gone.
var ErrConnectionClosed = errors.New("x11 connection closed")

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server and initializes
// the RandR extension.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// SubscribeScreenChanges asks the server to deliver ScreenChangeNotify
// events whenever outputs are added, removed or reconfigured.
func (c *Connection) SubscribeScreenChanges() error {
	err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("failed to subscribe to screen changes: %w", err)
	}
	return nil
}

// WaitEvent blocks until the next X event. Protocol errors are skipped;
// ErrConnectionClosed means the connection is gone.
func (c *Connection) WaitEvent() (xgb.Event, error) {
	for {
		ev, xerr := c.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrConnectionClosed
		}
		if xerr != nil {
			continue
		}
		return ev, nil
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
