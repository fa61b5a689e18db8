package probing

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	protocolICMP     = 1
	protocolIPv6ICMP = 58
	maxPacketSize    = 1500
)

var echoPayload = []byte("mirrorcheck")

// ICMPProber sends a single ICMP echo request and waits for the matching reply.
type ICMPProber struct {
	timeout    time.Duration
	privileged bool
	logger     zerolog.Logger
	seq        atomic.Uint32
}

// NewICMPProber creates an ICMPProber. Unless privileged is set, an unprivileged
// datagram socket is tried before a raw one.
func NewICMPProber(timeout time.Duration, privileged bool, logger zerolog.Logger) *ICMPProber {
	return &ICMPProber{
		timeout:    timeout,
		privileged: privileged,
		logger:     logger.With().Str("component", "ICMPProber").Logger(),
	}
}

// Probe implements Prober.
func (p *ICMPProber) Probe(ctx context.Context, host string) bool {
	if host == "" || ctx.Err() != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil || len(addrs) == 0 {
		p.logger.Debug().Err(err).Str("host", host).Msg("Could not resolve host")
		return false
	}
	ip := addrs[0].IP

	for _, network := range p.networks(ip.To4() != nil) {
		ok, err := p.echo(ctx, network, ip)
		if err == nil {
			return ok
		}
		p.logger.Debug().Err(err).Str("host", host).Str("network", network).Msg("ICMP socket unavailable")
	}
	return false
}

func (p *ICMPProber) networks(isIPv4 bool) []string {
	switch {
	case isIPv4 && p.privileged:
		return []string{"ip4:icmp"}
	case isIPv4:
		return []string{"udp4", "ip4:icmp"}
	case p.privileged:
		return []string{"ip6:ipv6-icmp"}
	default:
		return []string{"udp6", "ip6:ipv6-icmp"}
	}
}

// echo returns a non-nil error only when the socket could not be used at all,
// so the caller can fall back to another network.
func (p *ICMPProber) echo(ctx context.Context, network string, ip net.IP) (bool, error) {
	isIPv4 := ip.To4() != nil
	listenAddr := "0.0.0.0"
	if !isIPv4 {
		listenAddr = "::"
	}

	conn, err := icmp.ListenPacket(network, listenAddr)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return false, err
		}
	}

	datagram := network == "udp4" || network == "udp6"
	id := os.Getpid() & 0xffff
	seq := int(p.seq.Add(1) & 0xffff)

	var msgType icmp.Type = ipv4.ICMPTypeEcho
	proto := protocolICMP
	if !isIPv4 {
		msgType = ipv6.ICMPTypeEchoRequest
		proto = protocolIPv6ICMP
	}

	msg := icmp.Message{
		Type: msgType,
		Code: 0,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: echoPayload},
	}
	wire, err := msg.Marshal(nil)
	if err != nil {
		return false, err
	}

	var dst net.Addr = &net.IPAddr{IP: ip}
	if datagram {
		dst = &net.UDPAddr{IP: ip}
	}
	if _, err := conn.WriteTo(wire, dst); err != nil {
		return false, err
	}

	buf := make([]byte, maxPacketSize)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			// timeout or cancellation: the socket worked, the host did not answer
			return false, nil
		}

		reply, err := icmp.ParseMessage(proto, buf[:n])
		if err != nil {
			continue
		}
		if reply.Type != ipv4.ICMPTypeEchoReply && reply.Type != ipv6.ICMPTypeEchoReply {
			continue
		}
		body, ok := reply.Body.(*icmp.Echo)
		if !ok || body.Seq != seq {
			continue
		}
		// the kernel rewrites the identifier of datagram echo sockets
		if !datagram && body.ID != id {
			continue
		}
		return true, nil
	}
}
