package cache

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// ValkeyProvider implements Provider backed by a Valkey/Redis-compatible
// server, speaking RESP directly over a short-lived connection per
// operation.
type ValkeyProvider struct {
	cfg ValkeyConfig
}

// ValkeyConfig holds connection parameters for the Valkey server.
type ValkeyConfig struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TLS          bool
}

// NewValkeyProvider creates a Provider using the supplied configuration.
// It pings the target once to fail fast on bad credentials or
// connectivity.
func NewValkeyProvider(cfg ValkeyConfig) (*ValkeyProvider, error) {
	if cfg.Addr == "" {
		return nil, errors.New("valkey addr is required")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 500 * time.Millisecond
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 500 * time.Millisecond
	}

	provider := &ValkeyProvider{cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := provider.ping(ctx); err != nil {
		return nil, err
	}
	return provider, nil
}

// Get fetches bytes by key, returning ErrCacheMiss when the key is absent.
func (p *ValkeyProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.withConn(ctx, func(vc *valkeyConn) error {
		if err := vc.writeCommand("GET", key); err != nil {
			return err
		}
		reply, err := vc.readReply()
		if err != nil {
			return err
		}
		if reply.isNil {
			return ErrCacheMiss
		}
		payload = reply.data
		return nil
	})
	return payload, err
}

// Set stores bytes with the provided TTL.
func (p *ValkeyProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.withConn(ctx, func(vc *valkeyConn) error {
		args := []string{key, string(value)}
		if ttl > 0 {
			args = append(args, "PX", strconv.FormatInt(ttl.Milliseconds(), 10))
		}
		if err := vc.writeCommand("SET", args...); err != nil {
			return err
		}
		reply, err := vc.readReply()
		if err != nil {
			return err
		}
		if string(reply.data) != "OK" {
			return fmt.Errorf("unexpected SET response: %s", reply.data)
		}
		return nil
	})
}

// Del removes a key.
func (p *ValkeyProvider) Del(ctx context.Context, key string) error {
	return p.withConn(ctx, func(vc *valkeyConn) error {
		if err := vc.writeCommand("DEL", key); err != nil {
			return err
		}
		_, err := vc.readReply()
		return err
	})
}

// Close is a no-op; connections are per-operation.
func (p *ValkeyProvider) Close() error { return nil }

func (p *ValkeyProvider) ping(ctx context.Context) error {
	return p.withConn(ctx, func(vc *valkeyConn) error {
		if err := vc.writeCommand("PING"); err != nil {
			return err
		}
		reply, err := vc.readReply()
		if err != nil {
			return err
		}
		if !strings.EqualFold(string(reply.data), "PONG") {
			return fmt.Errorf("unexpected PING response: %s", reply.data)
		}
		return nil
	})
}

func (p *ValkeyProvider) withConn(ctx context.Context, fn func(*valkeyConn) error) error {
	dialer := &net.Dialer{Timeout: p.cfg.DialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if p.cfg.TLS {
		conn, err = tls.DialWithDialer(dialer, "tcp", p.cfg.Addr, nil)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", p.cfg.Addr)
	}
	if err != nil {
		return fmt.Errorf("dial valkey: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Now().Add(p.cfg.ReadTimeout))
		_ = conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
	}

	vc := &valkeyConn{reader: bufio.NewReader(conn), conn: conn}

	if p.cfg.Password != "" {
		args := []string{p.cfg.Password}
		if p.cfg.Username != "" {
			args = []string{p.cfg.Username, p.cfg.Password}
		}
		if err := vc.writeCommand("AUTH", args...); err != nil {
			return err
		}
		if _, err := vc.readReply(); err != nil {
			return fmt.Errorf("valkey auth: %w", err)
		}
	}
	if p.cfg.DB != 0 {
		if err := vc.writeCommand("SELECT", strconv.Itoa(p.cfg.DB)); err != nil {
			return err
		}
		if _, err := vc.readReply(); err != nil {
			return fmt.Errorf("valkey select db: %w", err)
		}
	}

	return fn(vc)
}

type valkeyConn struct {
	reader *bufio.Reader
	conn   net.Conn
}

type valkeyReply struct {
	data  []byte
	isNil bool
}

// writeCommand encodes a RESP array of bulk strings.
func (vc *valkeyConn) writeCommand(name string, args ...string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "*%d\r\n", len(args)+1)
	fmt.Fprintf(&b, "$%d\r\n%s\r\n", len(name), name)
	for _, arg := range args {
		fmt.Fprintf(&b, "$%d\r\n%s\r\n", len(arg), arg)
	}
	_, err := vc.conn.Write([]byte(b.String()))
	return err
}

func (vc *valkeyConn) readReply() (valkeyReply, error) {
	line, err := vc.readLine()
	if err != nil {
		return valkeyReply{}, err
	}
	if len(line) == 0 {
		return valkeyReply{}, errors.New("empty valkey reply")
	}

	switch line[0] {
	case '+', ':':
		return valkeyReply{data: []byte(line[1:])}, nil
	case '-':
		return valkeyReply{}, fmt.Errorf("valkey error: %s", line[1:])
	case '$':
		length, err := strconv.Atoi(line[1:])
		if err != nil {
			return valkeyReply{}, fmt.Errorf("bad bulk length %q", line[1:])
		}
		if length < 0 {
			return valkeyReply{isNil: true}, nil
		}
		payload := make([]byte, length+2)
		if _, err := io.ReadFull(vc.reader, payload); err != nil {
			return valkeyReply{}, err
		}
		return valkeyReply{data: payload[:length]}, nil
	default:
		return valkeyReply{}, fmt.Errorf("unexpected valkey reply prefix %q", line[0])
	}
}

func (vc *valkeyConn) readLine() (string, error) {
	line, err := vc.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
