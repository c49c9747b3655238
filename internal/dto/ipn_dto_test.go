package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONResult_GatewayAck(t *testing.T) {
	r := JSONResult(200, GatewayAck{RspCode: "00", Message: "Success"})
	require.Equal(t, 200, r.StatusCode)
	require.Equal(t, `{"RspCode":"00","Message":"Success"}`, r.Body)
}

func TestErrorResult(t *testing.T) {
	r := ErrorResult(400, "No parameters provided")
	require.Equal(t, 400, r.StatusCode)
	require.Equal(t, `{"error":"No parameters provided"}`, r.Body)
}

func TestJSONResult_Unmarshalable(t *testing.T) {
	r := JSONResult(200, map[string]interface{}{"ch": make(chan int)})
	require.Equal(t, 500, r.StatusCode)
	require.Equal(t, `{"error":"Internal server error"}`, r.Body)
}

func TestIpnEvent_DecodeEnvelope(t *testing.T) {
	raw := `{"httpMethod":"POST","queryStringParameters":null,"body":"dm5wX1R4blJlZj1UMQ==","isBase64Encoded":true}`
	var evt IpnEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &evt))
	require.Equal(t, "POST", evt.HTTPMethod)
	require.True(t, evt.IsBase64Encoded)
	require.Nil(t, evt.QueryStringParameters)
}
