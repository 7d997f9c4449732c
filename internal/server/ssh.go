// Package server serves corridor sessions over SSH. Every connection gets its
// own viewer and frame loop; only the immutable map is shared.
package server

import (
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/gliderlabs/ssh"

	"chosenoffset.com/corridor/internal/render"
	"chosenoffset.com/corridor/internal/render/raster"
	"chosenoffset.com/corridor/internal/render/terminal"
)

// GameFactory builds a fresh game bound to a session's input. user is the
// SSH login name, which the factory may use to pick a map.
type GameFactory func(user string, input render.InputManager) (render.Game, error)

// SSHServer wraps the SSH listener and the per-session frame loops.
type SSHServer struct {
	addr    string
	hostKey string
	tps     int
	newGame GameFactory
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, tps int, newGame GameFactory) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		tps:     tps,
		newGame: newGame,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server, err := s.newServer()
	if err != nil {
		return err
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// Serve accepts SSH connections on l until it is closed.
func (s *SSHServer) Serve(l net.Listener) error {
	server, err := s.newServer()
	if err != nil {
		return err
	}
	return server.Serve(l)
}

// newServer builds the listener config. Without a host key file an
// ephemeral key is generated.
func (s *SSHServer) newServer() (*ssh.Server, error) {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}

	if s.hostKey != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
			return nil, fmt.Errorf("set host key: %w", err)
		}
	}
	return server, nil
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	input := terminal.NewKeyState(terminal.DefaultHold)
	game, err := s.newGame(sess.User(), input)
	if err != nil {
		log.Printf("Session setup failed for %s: %v", sess.RemoteAddr(), err)
		fmt.Fprintln(sess, "Error: could not start session")
		return
	}

	log.Printf("Viewer connected: %s (%s)", sess.User(), sess.RemoteAddr())
	defer log.Printf("Viewer disconnected: %s (%s)", sess.User(), sess.RemoteAddr())

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	// Setup terminal
	io.WriteString(sess, terminal.EnableAltScreen())
	io.WriteString(sess, terminal.HideCursor())
	io.WriteString(sess, terminal.ClearScreen())
	defer func() {
		io.WriteString(sess, terminal.ShowCursor())
		io.WriteString(sess, terminal.DisableAltScreen())
	}()

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				input.RequestClose()
				return
			}
			terminal.ParseInput(buf[:n], input)
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	present := func(frame *raster.Image) error {
		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()

		_, err := io.WriteString(sess, terminal.EncodeFrame(frame.RGBA(), w, h))
		return err
	}

	termMu.Lock()
	w, h := game.Layout(termW, termH)
	termMu.Unlock()
	if err := raster.Run(sess.Context(), game, w, h, s.tps, present); err != nil {
		log.Printf("Session %s ended with error: %v", sess.RemoteAddr(), err)
	}
}
