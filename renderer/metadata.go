// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"goglobe/planet"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Metadata describes a point cloud as served by the point cloud server:
//
//	{"pointsCount": 1234,
//	 "sector": {"lowerLatitude": 39.1, "lowerLongitude": -77.2,
//	            "upperLatitude": 39.3, "upperLongitude": -76.9},
//	 "minHeight": 12.5, "maxHeight": 310}
//
// Angles are in degrees, heights in meters.
type Metadata struct {
	PointsCount int64
	Sector      planet.Sector
	MinHeight   float64
	MaxHeight   float64
}

func number(f map[string]*structpb.Value, key string) (float64, error) {
	v, ok := f[key]
	if !ok {
		return 0, errors.Errorf("missing %q", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.Errorf("%q is not a number", key)
	}
	return n.NumberValue, nil
}

func parseMetadata(data []byte) (*Metadata, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing metadata")
	}
	f := s.GetFields()
	var md Metadata
	count, err := number(f, "pointsCount")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.Errorf("negative pointsCount %v", count)
	}
	md.PointsCount = int64(count)

	sv, ok := f["sector"]
	if !ok || sv.GetStructValue() == nil {
		return nil, errors.New("missing \"sector\" object")
	}
	sf := sv.GetStructValue().GetFields()
	var c [4]float64
	for i, k := range []string{"lowerLatitude", "lowerLongitude", "upperLatitude", "upperLongitude"} {
		if c[i], err = number(sf, k); err != nil {
			return nil, errors.Wrap(err, "sector")
		}
	}
	if c[0] > c[2] || c[1] > c[3] {
		return nil, errors.Errorf("sector lower corner (%v, %v) above upper corner (%v, %v)", c[0], c[1], c[2], c[3])
	}
	md.Sector = planet.NewSector(c[0], c[1], c[2], c[3])

	if md.MinHeight, err = number(f, "minHeight"); err != nil {
		return nil, err
	}
	if md.MaxHeight, err = number(f, "maxHeight"); err != nil {
		return nil, err
	}
	if md.MinHeight > md.MaxHeight {
		return nil, errors.Errorf("minHeight %v above maxHeight %v", md.MinHeight, md.MaxHeight)
	}
	return &md, nil
}
