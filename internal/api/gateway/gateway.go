// Gateway API implementation
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"cipherlab/internal/pkg/classical"
	"cipherlab/internal/pkg/encryption"
	"cipherlab/internal/pkg/helpers"
	"cipherlab/internal/pkg/publickey"
	"cipherlab/internal/protocol"
)

// Server exposes the cipher registry over HTTP and WebSocket. It holds no
// other state: every cipher call is a pure function of its inputs, so
// handlers are safe for concurrent use.
type Server struct {
	addr     string
	ciphers  map[string]encryption.Cipher
	log      *helpers.Logger
	upgrader websocket.Upgrader
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// New creates a gateway server with every toolbox cipher registered.
func New(addr string) *Server {
	s := &Server{
		addr:    addr,
		ciphers: make(map[string]encryption.Cipher),
		log:     helpers.NewLogger("gateway"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	for _, c := range []encryption.Cipher{
		encryption.NewFeistel(),
		encryption.NewSPN(),
		classical.NewShift(),
		classical.NewAffine(),
		classical.NewHill(),
		classical.NewRailFence(),
		classical.NewColumnar(),
		classical.NewPlayfair(),
		publickey.NewElGamal(),
		publickey.NewECElGamal(),
	} {
		s.ciphers[c.Name()] = c
	}
	return s
}

// Router builds the HTTP routes; split from Start so tests can drive the
// handlers directly.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("cipherlab API server"))
	}).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/ciphers", s.handleListCiphers).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/ciphers/{name}/encrypt", s.handleTransform(protocol.OpEncrypt)).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/ciphers/{name}/decrypt", s.handleTransform(protocol.OpDecrypt)).Methods("POST", "OPTIONS")

	router.HandleFunc("/ws", s.handleWebSocket)

	return corsMiddleware(router)
}

// Start starts the gateway server
func (s *Server) Start() error {
	s.log.Info("listening on", s.addr)
	return http.ListenAndServe(s.addr, s.Router())
}

// handleListCiphers returns the registered cipher names sorted.
func (s *Server) handleListCiphers(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.ciphers))
	for name := range s.ciphers {
		names = append(names, name)
	}
	sort.Strings(names)

	writeJSON(w, http.StatusOK, map[string][]string{"ciphers": names})
}

func (s *Server) handleTransform(op protocol.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		var req protocol.CipherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{Error: "invalid request body"})
			return
		}

		output, err := s.apply(op, name, req.Key, req.Input)
		if err != nil {
			writeJSON(w, statusFor(err), protocol.ErrorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, protocol.CipherResponse{Cipher: name, Output: output})
	}
}

// handleWebSocket upgrades to a request/response session: each JSON frame
// names an operation, cipher, key and input, and gets one reply frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	for {
		var req protocol.WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", err)
			}
			return
		}

		resp := protocol.WSResponse{Op: req.Op, Cipher: req.Cipher}
		output, err := s.apply(req.Op, req.Cipher, req.Key, req.Input)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Output = output
		}

		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("websocket write failed", err)
			return
		}
	}
}

var errUnknownCipher = errors.New("unknown cipher")

func (s *Server) apply(op protocol.Operation, name, key, input string) (string, error) {
	cipher, ok := s.ciphers[name]
	if !ok {
		return "", errUnknownCipher
	}

	switch op {
	case protocol.OpEncrypt:
		return cipher.Encrypt(input, key)
	case protocol.OpDecrypt:
		return cipher.Decrypt(input, key)
	default:
		return "", errors.New("unknown operation")
	}
}

func statusFor(err error) int {
	if errors.Is(err, errUnknownCipher) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
