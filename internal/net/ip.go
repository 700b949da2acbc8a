package net

import (
	"fmt"
	"net"
)

// OutgoingIP reports the IPv4 address watchers should dial for the share
// link. The routing table picks it: a throwaway UDP socket toward a
// public address reveals the outgoing interface without sending a packet.
func OutgoingIP() (string, error) {
	if conn, err := net.Dial("udp4", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String(), nil
		}
	}
	// Offline host: walk the interfaces for any routable IPv4 address.
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("could not list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
	}
	return "", fmt.Errorf("no routable IPv4 address found")
}
