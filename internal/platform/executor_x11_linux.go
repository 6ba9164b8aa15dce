package platform

import (
	"sync"

	"autoclicker/internal/core/model"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/pkg/errors"
)

// X11Executor injects input with the XTEST extension over a plain X11
// connection, without cgo.
type X11Executor struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

// NewX11Executor connects to $DISPLAY and initializes XTEST.
func NewX11Executor() (*X11Executor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "init XTEST extension")
	}

	setup := xproto.Setup(conn)
	return &X11Executor{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

func (executor *X11Executor) Position() (model.Point, error) {
	executor.mu.Lock()
	defer executor.mu.Unlock()

	reply, err := xproto.QueryPointer(executor.conn, executor.root).Reply()
	if err != nil {
		return model.Point{}, errors.Wrap(err, "query pointer")
	}
	return model.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

func (executor *X11Executor) Move(point model.Point) error {
	executor.mu.Lock()
	defer executor.mu.Unlock()

	if err := xproto.WarpPointerChecked(
		executor.conn,
		xproto.WindowNone,
		executor.root,
		0,
		0,
		0,
		0,
		clampInt16(point.X),
		clampInt16(point.Y),
	).Check(); err != nil {
		return errors.Wrapf(err, "warp pointer to %s", point)
	}
	return nil
}

func (executor *X11Executor) Click(button model.Button) error {
	detail, err := x11Button(button)
	if err != nil {
		return err
	}

	executor.mu.Lock()
	defer executor.mu.Unlock()

	for _, eventType := range []byte{xproto.ButtonPress, xproto.ButtonRelease} {
		if err := xtest.FakeInputChecked(
			executor.conn,
			eventType,
			detail,
			xproto.TimeCurrentTime,
			executor.root,
			0,
			0,
			0,
		).Check(); err != nil {
			return errors.Wrapf(err, "fake %s button event", button)
		}
	}
	executor.conn.Sync()
	return nil
}

// Close drops the X connection.
func (executor *X11Executor) Close() error {
	executor.conn.Close()
	return nil
}

func x11Button(button model.Button) (byte, error) {
	switch button {
	case model.ButtonLeft:
		return byte(xproto.ButtonIndex1), nil
	case model.ButtonMiddle:
		return byte(xproto.ButtonIndex2), nil
	case model.ButtonRight:
		return byte(xproto.ButtonIndex3), nil
	default:
		return 0, errors.Errorf("unknown button %q", button)
	}
}

func clampInt16(value int) int16 {
	if value > 32767 {
		return 32767
	}
	if value < -32768 {
		return -32768
	}
	return int16(value)
}
