package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera_Settings(t *testing.T) {
	cam, ok := NewCamera(3).(*cameraImpl)
	require.True(t, ok, "NewCamera should return the gocv-backed camera")

	assert.Equal(t, 3, cam.deviceID)
	assert.Equal(t, 640, cam.width)
	assert.Equal(t, 480, cam.height)
	assert.Equal(t, DefaultFPS, cam.FPS())
	assert.Nil(t, cam.capture, "the device is opened lazily")
}

func TestCamera_SetFPSBeforeOpen(t *testing.T) {
	cam := NewCamera(0)

	cam.SetFPS(12)
	cam.SetFPS(0)
	cam.SetFPS(-1)

	assert.Equal(t, 12, cam.FPS(), "non-positive rates keep the last valid one")
}

func TestCamera_UnopenedDevice(t *testing.T) {
	cam := NewCamera(0)

	frame, err := cam.ReadFrame()
	assert.Nil(t, frame)
	assert.ErrorIs(t, err, ErrCameraNotOpen)
	assert.NotErrorIs(t, err, ErrFrameRead)

	assert.NoError(t, cam.Close(), "closing an unopened camera is a no-op")
	assert.NoError(t, cam.Close())
}

func TestCamera_Device(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping camera device test in short mode")
	}

	cam := NewCamera(0)
	cam.SetFPS(15)
	if err := cam.Open(); err != nil {
		t.Skipf("no camera available: %v", err)
	}
	require.NoError(t, cam.Open(), "opening twice reuses the device")

	frame, err := cam.ReadFrame()
	if err != nil {
		cam.Close()
		require.ErrorIs(t, err, ErrFrameRead)
		t.Skipf("camera opened but yields no frames: %v", err)
	}
	rows, cols := frame.Rows(), frame.Cols()
	if cols != DefaultWidth || rows != DefaultHeight {
		t.Logf("device ignored the requested size: got %dx%d", cols, rows)
	}

	Mirror(frame)
	assert.Equal(t, rows, frame.Rows())
	assert.Equal(t, cols, frame.Cols())
	frame.Close()

	require.NoError(t, cam.Close())
	_, err = cam.ReadFrame()
	assert.ErrorIs(t, err, ErrCameraNotOpen)
}
