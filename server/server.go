package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/carillon-io/carillon-core/crypto"
	cosekey "github.com/carillon-io/carillon-core/crypto/cose/key"
	"github.com/carillon-io/carillon-core/logger"
)

const (
	ShutdownTimeout  = 5 * time.Second
	MediaTypeCOSEKey = "application/cose-key"
)

// Server is the node's placeholder HTTP listener
type Server struct {
	addr string
	kp   crypto.KeyPair
	log  logger.Logger
}

func New(addr string, kp crypto.KeyPair, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard
	}
	return &Server{
		addr: addr,
		kp:   kp,
		log:  log.With("address", addr),
	}
}

type IdentityResponse struct {
	Algorithm string `json:"algorithm"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("hello, world"))
	})
	mux.HandleFunc("GET /identity", s.handleIdentity)
	mux.HandleFunc("GET /identity/cose", s.handleIdentityCOSE)
	return mux
}

func (s *Server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	pub := s.kp.PublicKey()
	res := IdentityResponse{
		Algorithm: pub.Algorithm(),
		Address:   pub.Address(),
		PublicKey: hex.EncodeToString(pub.Bytes()),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&res); err != nil {
		s.log.Error(err)
	}
}

func (s *Server) handleIdentityCOSE(w http.ResponseWriter, r *http.Request) {
	key, err := cosekey.PublicKeyCOSE(s.kp.PublicKey())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	}
	w.Header().Set("Content-Type", MediaTypeCOSEKey)
	w.Write(key.Encode())
}

// Serve listens on the configured address until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, l)
}

// ServeListener takes ownership of l
func (s *Server) ServeListener(ctx context.Context, l net.Listener) error {
	srv := http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	s.log.Infof("Listening on %s", l.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
