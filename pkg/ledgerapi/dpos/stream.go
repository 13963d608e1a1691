package dpos

import (
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

const blockEventQueueSize = 16

type blockMessage struct {
	Event string `json:"event"`
	Block struct {
		ID           string `json:"id"`
		Height       int64  `json:"height"`
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	} `json:"block"`
}

// SubscribeBlocks dials the node's websocket endpoint and forwards new-block
// notifications until done is closed or the connection drops. The returned
// channel is closed in both cases, reconnecting is up to the caller.
func (d *dposNode) SubscribeBlocks(done <-chan struct{}) (<-chan ledgerapi.BlockEvent, error) {
	wsURL := websocketURL(d.apiURL)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	events := make(chan ledgerapi.BlockEvent, blockEventQueueSize)

	go func() {
		<-done
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-done:
				default:
					log.WithError(err).Debug("block stream closed")
				}
				return
			}

			var msg blockMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.WithError(err).Debug("skipping malformed block message")
				continue
			}
			if msg.Event != "newBlock" {
				continue
			}

			txIDs := make([]string, 0, len(msg.Block.Transactions))
			for _, tx := range msg.Block.Transactions {
				txIDs = append(txIDs, tx.ID)
			}

			select {
			case events <- ledgerapi.BlockEvent{
				Height:         msg.Block.Height,
				BlockID:        msg.Block.ID,
				TransactionIDs: txIDs,
			}:
			default:
				// dropped when the consumer lags; the next block supersedes it
			}
		}
	}()

	return events, nil
}

func websocketURL(apiURL string) string {
	wsURL := apiURL
	if strings.HasPrefix(wsURL, "https://") {
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	} else if strings.HasPrefix(wsURL, "http://") {
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}
	return wsURL + "/socket"
}
