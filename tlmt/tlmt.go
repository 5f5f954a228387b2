package tlmt

import (
	"context"
	"crypto/sha256"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"
)

var (
	once       sync.Once
	identifier machineIdentifier
)

// Event is one anonymous usage event.
type Event struct {
	AnonymousID string
	Name        string
	Properties  map[string]any
}

func NewEvent(name string, props map[string]any) Event {
	ev := Event{
		AnonymousID: generateMachineID().id,
		Name:        name,
		Properties:  generateMachineID().meta,
	}

	for k, v := range props {
		ev.Properties[k] = v
	}

	return ev
}

type Telemetry interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

type machineIdentifier struct {
	id   string
	meta map[string]any
}

// generateMachineID derives a stable anonymous id from the host id. The raw
// id never leaves the machine, only its hash does.
func generateMachineID() machineIdentifier {
	once.Do(func() {
		hostID, err := host.HostID()
		if err != nil || hostID == "" {
			hostID = uuid.New().String()
		}

		hash := sha256.New()
		hash.Write([]byte(hostID))
		hash.Write([]byte(runtime.GOARCH))
		hash.Write([]byte(runtime.GOOS))

		meta := make(map[string]any)

		info, err := host.Info()
		if err == nil {
			meta["os"] = info.OS
			meta["platform"] = info.Platform
			meta["platform_family"] = info.PlatformFamily
		}

		identifier.id = fmt.Sprintf("%x", hash.Sum(nil))
		identifier.meta = meta
	})

	return identifier
}
