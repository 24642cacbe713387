// Package discovery locates Scribe printers on the local network via mDNS.
//
// Printers advertise an "_http._tcp" service and use hostnames of the form
// "scribe-<id>.local", where <id> is derived from the chip's MAC address.
// Discovery browses for HTTP services, filters by hostname pattern, and
// returns the printers seen before the timeout.
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Printer and console on the same network segment
//   - Firewall allowing mDNS (UDP port 5353)
//
// # Thread Safety
//
// Safe for concurrent use; multiple discovery sessions can run
// simultaneously without interference.
package discovery
