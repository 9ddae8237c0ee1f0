package inventory

import (
	"fmt"
	"strconv"
)

// NoName is shown for instances without a usable "Name" tag.
const NoName = "N/A"

// KeySuffix is appended to key pair names to form the key file name.
const KeySuffix = ".pem"

// Format flattens an inventory into display-ready instances.
//
// Instances are kept in traversal order (reservations, then instances within
// each reservation) and numbered from 1 without gaps. Terminated instances and
// instances without a public address are dropped. The result is never sorted:
// the index a user picks from the table must point back at the same instance.
func Format(inv *Inventory) []Instance {
	instances := []Instance{}
	if inv == nil {
		return instances
	}

	for _, reservation := range inv.Reservations {
		for _, raw := range reservation.Instances {
			if !eligible(raw) {
				continue
			}

			name, named := instanceName(raw.Tags)
			instances = append(instances, Instance{
				Index:   len(instances) + 1,
				ID:      raw.InstanceID,
				Name:    name,
				Type:    fmt.Sprintf("(%s) %s", raw.PlatformDetails, raw.InstanceType),
				Address: *raw.PublicIPAddress,
				Key:     raw.KeyName + KeySuffix,
				KeyName: raw.KeyName,
				Named:   named,
			})
		}
	}

	return instances
}

// eligible reports whether raw can be listed. An empty public address counts
// as no address.
func eligible(raw RawInstance) bool {
	if raw.State.Terminated() {
		return false
	}
	return raw.PublicIPAddress != nil && *raw.PublicIPAddress != ""
}

// instanceName returns the value of the first "Name" tag, or NoName when the
// tag is missing or empty.
func instanceName(tags []Tag) (string, bool) {
	for _, tag := range tags {
		if tag.Key != "Name" {
			continue
		}
		if tag.Value == "" {
			return NoName, false
		}
		return tag.Value, true
	}
	return NoName, false
}

// Row returns the instance as a table row: #, ID, Name, Type, IP Address, Key.
func (i Instance) Row() []string {
	return []string{
		strconv.Itoa(i.Index),
		i.ID,
		i.Name,
		i.Type,
		i.Address,
		i.Key,
	}
}
