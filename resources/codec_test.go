// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources_test

import (
	"encoding/json"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/resources"
)

type codecSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&codecSuite{})

func (s *codecSuite) TestRoundTripWebsite(c *gc.C) {
	spec := resources.WebsiteSpec{
		SiteName:   "mylab-dev-web",
		Runtime:    "NODE|20-lts",
		SKU:        "B1",
		Repository: "me/blog",
		Branch:     "main",
		Static:     true,
	}
	attrs, err := resources.EncodeSpec(spec)
	c.Assert(err, jc.ErrorIsNil)
	got, err := resources.DecodeSpec(resources.KindWebsite, attrs)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, jc.DeepEquals, spec)
}

func (s *codecSuite) TestRoundTripEventHub(c *gc.C) {
	spec := resources.EventHubSpec{
		NamespaceName:  "mylab-dev-events",
		HubName:        "telemetry",
		PartitionCount: 4,
		RetentionDays:  3,
		ConsumerGroups: []string{"dashboard", "archiver"},
	}
	attrs, err := resources.EncodeSpec(spec)
	c.Assert(err, jc.ErrorIsNil)
	got, err := resources.DecodeSpec(resources.KindEventHub, attrs)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, jc.DeepEquals, spec)
}

func (s *codecSuite) TestRoundTripDNSZone(c *gc.C) {
	spec := resources.DNSZoneSpec{
		ZoneName: "example.com",
		Records: []resources.RecordSpec{{
			Name:   "@",
			Type:   "A",
			Values: []string{"203.0.113.10"},
			TTL:    3600,
		}},
	}
	attrs, err := resources.EncodeSpec(spec)
	c.Assert(err, jc.ErrorIsNil)
	got, err := resources.DecodeSpec(resources.KindDNSZone, attrs)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, jc.DeepEquals, spec)
}

func (s *codecSuite) TestEncodeSpecIsJSONFriendly(c *gc.C) {
	// Specs with nested structures must encode to string-keyed maps;
	// interface-keyed ones break the JSON formatter.
	attrs, err := resources.EncodeSpec(resources.DNSZoneSpec{
		ZoneName: "example.com",
		Records: []resources.RecordSpec{{
			Name:   "@",
			Type:   "A",
			Values: []string{"203.0.113.10"},
			TTL:    3600,
		}},
	})
	c.Assert(err, jc.ErrorIsNil)
	_, err = json.Marshal(attrs)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *codecSuite) TestNormalizeAttrs(c *gc.C) {
	attrs := resources.NormalizeAttrs(map[string]interface{}{
		"records": []interface{}{
			map[interface{}]interface{}{
				"name": "@",
				"values": []interface{}{
					map[interface{}]interface{}{"ip": "203.0.113.10"},
				},
			},
		},
	})
	c.Check(attrs, jc.DeepEquals, map[string]interface{}{
		"records": []interface{}{
			map[string]interface{}{
				"name": "@",
				"values": []interface{}{
					map[string]interface{}{"ip": "203.0.113.10"},
				},
			},
		},
	})
}

func (s *codecSuite) TestDecodeUnknownKind(c *gc.C) {
	_, err := resources.DecodeSpec(resources.Kind("mainframe"), nil)
	c.Assert(err, gc.ErrorMatches, `resource kind "mainframe" not valid`)
}
