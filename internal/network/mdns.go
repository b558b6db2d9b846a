package network

import (
	"fmt"
	"log"
	"os"

	"github.com/grandcat/zeroconf"
)

// ServiceType is the DNS-SD service clients browse for
const ServiceType = "_astra._tcp"

// Advertiser publishes the server over mDNS until Shutdown is called.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers instance on port. An empty instance uses the hostname.
func Advertise(instance string, port int, version string) (*Advertiser, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "astra"
		}
		instance = "Astra on " + host
	}

	txt := []string{
		fmt.Sprintf("version=%s", version),
		"path=/",
		"udp=1",
	}
	server, err := zeroconf.Register(instance, ServiceType, "local.", port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("mdns register failed: %w", err)
	}
	log.Printf("mDNS: advertised %q on %s port=%d", instance, ServiceType, port)
	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	log.Printf("mDNS: advertisement withdrawn")
}
