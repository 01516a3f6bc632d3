// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"fmt"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// EncodeSpec flattens a spec into attributes for embedding in a job
// record.
func EncodeSpec(spec Spec) (map[string]interface{}, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Trace(err)
	}
	return NormalizeAttrs(attrs), nil
}

// NormalizeAttrs rewrites the interface-keyed maps the YAML decoder
// produces into string-keyed ones, so encoded attributes survive a
// trip through the JSON formatters.
func NormalizeAttrs(attrs map[string]interface{}) map[string]interface{} {
	for key, value := range attrs {
		attrs[key] = normalizeValue(value)
	}
	return attrs
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, elem := range v {
			m[fmt.Sprint(key)] = normalizeValue(elem)
		}
		return m
	case map[string]interface{}:
		return NormalizeAttrs(v)
	case []interface{}:
		for i, elem := range v {
			v[i] = normalizeValue(elem)
		}
		return v
	}
	return value
}

// DecodeSpec rebuilds a typed spec from its kind and encoded
// attributes.
func DecodeSpec(kind Kind, attrs map[string]interface{}) (Spec, error) {
	data, err := yaml.Marshal(attrs)
	if err != nil {
		return nil, errors.Trace(err)
	}
	unmarshal := func(into Spec) (Spec, error) {
		// The concrete types are value types; unmarshal through a
		// pointer copy.
		switch spec := into.(type) {
		case WebsiteSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case SQLDatabaseSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case CosmosDBSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case IoTHubSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case CognitiveServicesSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case DNSZoneSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case VPNGatewaySpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case StorageAccountSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case EventHubSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		case ServiceBusSpec:
			err = yaml.Unmarshal(data, &spec)
			into = spec
		}
		if err != nil {
			return nil, errors.Trace(err)
		}
		return into, nil
	}
	var zero Spec
	switch kind {
	case KindWebsite:
		zero = WebsiteSpec{}
	case KindSQLDatabase:
		zero = SQLDatabaseSpec{}
	case KindCosmosDB:
		zero = CosmosDBSpec{}
	case KindIoTHub:
		zero = IoTHubSpec{}
	case KindCognitiveServices:
		zero = CognitiveServicesSpec{}
	case KindDNSZone:
		zero = DNSZoneSpec{}
	case KindVPNGateway:
		zero = VPNGatewaySpec{}
	case KindStorageAccount:
		zero = StorageAccountSpec{}
	case KindEventHub:
		zero = EventHubSpec{}
	case KindServiceBus:
		zero = ServiceBusSpec{}
	default:
		return nil, errors.NotValidf("resource kind %q", kind)
	}
	return unmarshal(zero)
}
