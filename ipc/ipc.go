// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/ipc.go
// Summary: Unix socket control channel for a running tilecast.
//
// A second invocation (or a hotkey daemon) sends one-line commands to
// the running instance: "toggle", "clipboard", "reload", "quit".

package ipc

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"
)

// Known commands.
const (
	CmdToggle    = "toggle"
	CmdClipboard = "clipboard"
	CmdReload    = "reload"
	CmdQuit      = "quit"
)

// Handler receives validated commands from the socket.
type Handler func(cmd string)

// Server owns the listening socket.
type Server struct {
	path     string
	listener net.Listener
	handler  Handler
}

// Listen binds the control socket, replacing a stale one left behind
// by a crashed instance.
func Listen(path string, handler Handler) (*Server, error) {
	if _, err := os.Stat(path); err == nil {
		// Either a stale socket or a running instance. Probing with a
		// connect distinguishes the two.
		if conn, err := net.DialTimeout("unix", path, 250*time.Millisecond); err == nil {
			conn.Close()
			return nil, fmt.Errorf("another instance is already listening on %s", path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
		log.Printf("IPC: removed stale socket %s", path)
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	return &Server{path: path, listener: l, handler: handler}, nil
}

// Run accepts connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("IPC: accept failed: %v", err)
			return
		}
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}
	cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
	switch cmd {
	case CmdToggle, CmdClipboard, CmdReload, CmdQuit:
		s.handler(cmd)
		fmt.Fprintln(conn, "ok")
	default:
		log.Printf("IPC: unknown command %q", cmd)
		fmt.Fprintln(conn, "unknown command")
	}
}

// Close removes the socket.
func (s *Server) Close() error {
	err := s.listener.Close()
	os.Remove(s.path)
	return err
}

// Send delivers one command to a running instance and waits for its
// acknowledgement.
func Send(path, cmd string) error {
	conn, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", path, err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	if _, err := fmt.Fprintln(conn, cmd); err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read reply: %w", err)
	}
	if strings.TrimSpace(reply) != "ok" {
		return fmt.Errorf("rejected: %s", strings.TrimSpace(reply))
	}
	return nil
}
