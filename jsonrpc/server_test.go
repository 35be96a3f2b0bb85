package jsonrpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starledger/chain"
	"starledger/errors"
	"starledger/ownership"
	"starledger/service"
	"starledger/wallet"
)

type rpcErrorBody struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Data    errors.LedgerError `json:"data"`
}

type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcErrorBody   `json:"error"`
}

func newRPCFixture(t *testing.T) (*httptest.Server, *chain.Chain, *wallet.Wallet) {
	t.Helper()
	c := chain.New()
	c.Initialize()
	w, err := wallet.NewWallet()
	require.NoError(t, err)

	s := NewServer("", service.NewLedgerService(c), service.NewOwnershipService(ownership.NewGate(c)), service.NewHealthService(c))
	bridge := jhttp.NewBridge(s.buildMethodMap(), &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})
	srv := httptest.NewServer(bridge)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { bridge.Close() })
	return srv, c, w
}

func rpcPost(t *testing.T, url, method string, params interface{}) rpcEnvelope {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope rpcEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	return envelope
}

func TestGetBlockByHashMissReturnsNull(t *testing.T) {
	srv, _, _ := newRPCFixture(t)

	envelope := rpcPost(t, srv.URL, MethodChainGetBlockByHash, map[string]string{"hash": "nope"})
	require.Nil(t, envelope.Error)
	assert.Equal(t, "null", string(envelope.Result), "a lookup miss is a null result, not an error")
}

func TestGetBlockByHeight(t *testing.T) {
	srv, c, _ := newRPCFixture(t)
	genesis := c.GetByHeight(0)

	envelope := rpcPost(t, srv.URL, MethodChainGetBlockByHeight, map[string]uint64{"height": 0})
	require.Nil(t, envelope.Error)

	var got blockData
	require.NoError(t, json.Unmarshal(envelope.Result, &got))
	assert.Equal(t, genesis.Hash, got.Hash)
	assert.Empty(t, got.Owner)

	miss := rpcPost(t, srv.URL, MethodChainGetBlockByHeight, map[string]uint64{"height": 99})
	require.Nil(t, miss.Error)
	assert.Equal(t, "null", string(miss.Result))
}

func TestRequestChallengeErrorMapping(t *testing.T) {
	srv, _, _ := newRPCFixture(t)

	envelope := rpcPost(t, srv.URL, MethodOwnershipRequestChallenge, map[string]string{"address": "has:delimiter"})
	require.NotNil(t, envelope.Error)
	assert.Equal(t, -32602, envelope.Error.Code)
	assert.Equal(t, errors.ErrCodeInvalidAddress, envelope.Error.Data.Code)
	assert.Equal(t, errors.ErrMsgInvalidAddress, envelope.Error.Message)
}

func TestSubmitStarErrorMapping(t *testing.T) {
	srv, _, w := newRPCFixture(t)

	tests := []struct {
		name      string
		challenge string
		wantRPC   int
		wantCode  errors.LedgerErrorCode
	}{
		{"malformed challenge", "notachallenge", -32001, errors.ErrCodeMalformedChallenge},
		{"expired challenge", w.Address + ":1000000000:" + ownership.DefaultDomainTag, -32002, errors.ErrCodeChallengeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := rpcPost(t, srv.URL, MethodOwnershipSubmitStar, map[string]interface{}{
				"address":   w.Address,
				"challenge": tt.challenge,
				"signature": w.Sign(tt.challenge),
				"star":      map[string]string{"star": "x"},
			})
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantRPC, envelope.Error.Code)
			assert.Equal(t, tt.wantCode, envelope.Error.Data.Code)
		})
	}
}

func TestSubmitStarRejectsEmptyPayload(t *testing.T) {
	srv, c, w := newRPCFixture(t)

	envelope := rpcPost(t, srv.URL, MethodOwnershipSubmitStar, map[string]interface{}{
		"address":   w.Address,
		"challenge": "irrelevant",
		"signature": "irrelevant",
	})
	require.NotNil(t, envelope.Error)
	assert.Equal(t, -32602, envelope.Error.Code)
	assert.Equal(t, errors.ErrCodeInvalidPayload, envelope.Error.Data.Code)
	assert.Equal(t, 1, c.Length())
}

func TestChallengeSubmitRoundTrip(t *testing.T) {
	srv, c, w := newRPCFixture(t)

	challengeResp := rpcPost(t, srv.URL, MethodOwnershipRequestChallenge, map[string]string{"address": w.Address})
	require.Nil(t, challengeResp.Error)
	var challenge requestChallengeResponse
	require.NoError(t, json.Unmarshal(challengeResp.Result, &challenge))

	submitResp := rpcPost(t, srv.URL, MethodOwnershipSubmitStar, map[string]interface{}{
		"address":   w.Address,
		"challenge": challenge.Challenge,
		"signature": w.Sign(challenge.Challenge),
		"star":      map[string]string{"story": "first star over rpc"},
	})
	require.Nil(t, submitResp.Error)

	var sealed blockData
	require.NoError(t, json.Unmarshal(submitResp.Result, &sealed))
	assert.Equal(t, uint64(1), sealed.Height)
	assert.Equal(t, w.Address, sealed.Owner)
	assert.Equal(t, 2, c.Length())

	starsResp := rpcPost(t, srv.URL, MethodChainGetStarsByAddress, map[string]string{"address": w.Address})
	require.Nil(t, starsResp.Error)
	var stars getStarsResponse
	require.NoError(t, json.Unmarshal(starsResp.Result, &stars))
	require.Len(t, stars.Stars, 1)
	assert.Equal(t, sealed.Hash, stars.Stars[0].Hash)
}

func TestValidateMethod(t *testing.T) {
	srv, _, _ := newRPCFixture(t)

	envelope := rpcPost(t, srv.URL, MethodChainValidate, nil)
	require.Nil(t, envelope.Error)

	var result validateChainResponse
	require.NoError(t, json.Unmarshal(envelope.Result, &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Faults)
}
