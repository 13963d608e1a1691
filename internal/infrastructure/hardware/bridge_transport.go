package hardware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
	"github.com/dpos-wallet/wallet-daemon/pkg/httputil"
)

type bridgeTransport struct {
	bridgeURL string
}

// NewBridgeTransport returns a DeviceTransport that asks a local signing
// bridge about the connected device. The bridge answers on /device with
// `{"connected": bool, "unlocked": bool}`.
func NewBridgeTransport(bridgeURL string) ports.DeviceTransport {
	return &bridgeTransport{bridgeURL: bridgeURL}
}

func (t *bridgeTransport) Detect(_ context.Context) (ports.DeviceState, error) {
	status, body, err := httputil.NewHTTPRequest("GET", t.bridgeURL+"/device", "", nil)
	if err != nil {
		// an unreachable bridge means no device to talk to
		return ports.DeviceAbsent, nil
	}
	if status != http.StatusOK {
		return ports.DeviceAbsent, nil
	}

	var payload struct {
		Connected bool `json:"connected"`
		Unlocked  bool `json:"unlocked"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ports.DeviceAbsent, err
	}

	if !payload.Connected {
		return ports.DeviceAbsent, nil
	}
	if !payload.Unlocked {
		return ports.DeviceLocked, nil
	}
	return ports.DeviceReady, nil
}
