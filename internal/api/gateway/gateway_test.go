package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"cipherlab/internal/protocol"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New("unused").Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestListCiphers(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/ciphers")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	names := strings.Join(body["ciphers"], " ")
	for _, want := range []string{"FEISTEL64", "SPN128", "SHIFT", "PLAYFAIR", "ELGAMAL"} {
		if !strings.Contains(names, want) {
			t.Errorf("cipher list %q is missing %s", names, want)
		}
	}
}

func TestEncryptDecryptOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	encResp := postJSON(t, ts.URL+"/api/ciphers/FEISTEL64/encrypt", protocol.CipherRequest{
		Key:   "133457799BBCDFF1",
		Input: "HELLO",
	})
	defer encResp.Body.Close()
	if encResp.StatusCode != http.StatusOK {
		t.Fatalf("encrypt status = %d, want 200", encResp.StatusCode)
	}

	var enc protocol.CipherResponse
	if err := json.NewDecoder(encResp.Body).Decode(&enc); err != nil {
		t.Fatalf("decode encrypt response: %v", err)
	}

	decResp := postJSON(t, ts.URL+"/api/ciphers/FEISTEL64/decrypt", protocol.CipherRequest{
		Key:   "133457799BBCDFF1",
		Input: enc.Output,
	})
	defer decResp.Body.Close()

	var dec protocol.CipherResponse
	if err := json.NewDecoder(decResp.Body).Decode(&dec); err != nil {
		t.Fatalf("decode decrypt response: %v", err)
	}
	if dec.Output != "HELLO" {
		t.Fatalf("round-trip over HTTP = %q, want HELLO", dec.Output)
	}
}

func TestUnknownCipherReturns404(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/ciphers/ENIGMA/encrypt", protocol.CipherRequest{Key: "1", Input: "X"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBadKeyReturns400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/ciphers/SPN128/encrypt", protocol.CipherRequest{Key: "00", Input: "X"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body protocol.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error == "" {
		t.Error("error response has empty message")
	}
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(protocol.WSRequest{
		Op:     protocol.OpEncrypt,
		Cipher: "SHIFT",
		Key:    "3",
		Input:  "HELLO",
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var resp protocol.WSResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Output != "KHOOR" {
		t.Fatalf("websocket encrypt = %q, want KHOOR", resp.Output)
	}

	// Errors come back in-band on the same connection.
	if err := conn.WriteJSON(protocol.WSRequest{Op: protocol.OpEncrypt, Cipher: "NOPE"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if resp.Error == "" {
		t.Error("unknown cipher produced no websocket error")
	}
}
