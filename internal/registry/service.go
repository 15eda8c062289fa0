package registry

import "github.com/cockroachdb/errors"

// ServiceID names a service the container can hold. The set is closed: every
// value has a matching field on Container.
type ServiceID string

const (
	ServiceConfigs ServiceID = "configs"
	ServiceLogger  ServiceID = "logger"
	ServiceExample ServiceID = "example"
	ServiceDB      ServiceID = "db"
)

var allServices = []ServiceID{ServiceConfigs, ServiceLogger, ServiceExample, ServiceDB}

// AllServices returns every known id in bootstrap order.
func AllServices() []ServiceID {
	return append([]ServiceID(nil), allServices...)
}

// Valid reports whether id belongs to the known set.
func (id ServiceID) Valid() bool {
	for _, known := range allServices {
		if id == known {
			return true
		}
	}
	return false
}

// Kernel reports whether id is started before configuration-selected
// services.
func (id ServiceID) Kernel() bool {
	return id == ServiceConfigs || id == ServiceLogger
}

// ParseServiceID converts a configured name into a ServiceID.
func ParseServiceID(name string) (ServiceID, error) {
	id := ServiceID(name)
	if !id.Valid() {
		return "", errors.Newf("unknown service %q", name)
	}
	return id, nil
}
