package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessageWrapsPayload(t *testing.T) {
	msg, err := NewMessage(MessageTypeError, ErrorPayload{Error: "game not found"})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"error","payload":{"error":"game not found"}}`, string(raw))
}

func TestInboundMovePayload(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"move","payload":{"target":33}}`), &msg))
	require.Equal(t, MessageTypeMove, msg.Type)

	var move MovePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &move))
	require.Equal(t, 33, move.Target)
}
