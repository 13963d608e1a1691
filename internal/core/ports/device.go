package ports

import "context"

// DeviceState is a snapshot of the attached hardware wallet.
type DeviceState int

const (
	// DeviceAbsent means no device is plugged in.
	DeviceAbsent DeviceState = iota
	// DeviceLocked means a device is present but waiting for its PIN.
	DeviceLocked
	// DeviceReady means a device is present and unlocked.
	DeviceReady
)

// DeviceTransport is the low level driver detecting hardware wallet
// presence over USB/U2F. Implementations live outside this repository.
type DeviceTransport interface {
	// Detect probes the transport and returns the current device state.
	Detect(ctx context.Context) (DeviceState, error)
}
