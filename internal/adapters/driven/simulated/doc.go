// Package simulated provides in-process stand-ins for the platform
// location, activity recognition and geocoding services.
//
// The providers pace their emissions with golang.org/x/time/rate and
// support fault injection so the error paths of the dashboard can be
// exercised without real hardware.
package simulated
