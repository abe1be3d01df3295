// SPDX-License-Identifier: GPL-2.0-or-later

// Package planet models the body the globe is drawn on.
package planet

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geodetic2D is a position on the surface in degrees.
type Geodetic2D struct {
	Latitude  float64
	Longitude float64
}

type Geodetic3D struct {
	Geodetic2D
	Height float64
}

func FromDegrees(lat, lon, height float64) Geodetic3D {
	return Geodetic3D{Geodetic2D{lat, lon}, height}
}

func (g Geodetic2D) String() string {
	return fmt.Sprintf("(lat=%vd, lon=%vd)", g.Latitude, g.Longitude)
}

// Sector is a latitude/longitude rectangle.
type Sector struct {
	Lower Geodetic2D
	Upper Geodetic2D
}

func NewSector(lowerLat, lowerLon, upperLat, upperLon float64) Sector {
	return Sector{
		Lower: Geodetic2D{lowerLat, lowerLon},
		Upper: Geodetic2D{upperLat, upperLon},
	}
}

func (s Sector) Center() Geodetic2D {
	return Geodetic2D{
		Latitude:  (s.Lower.Latitude + s.Upper.Latitude) / 2,
		Longitude: (s.Lower.Longitude + s.Upper.Longitude) / 2,
	}
}

func (s Sector) Contains(g Geodetic2D) bool {
	return g.Latitude >= s.Lower.Latitude && g.Latitude <= s.Upper.Latitude &&
		g.Longitude >= s.Lower.Longitude && g.Longitude <= s.Upper.Longitude
}

func (s Sector) String() string {
	return fmt.Sprintf("Sector(%v - %v)", s.Lower, s.Upper)
}

// Planet is an ellipsoid of revolution.
type Planet struct {
	name  string
	radii mgl64.Vec3
	// oneOverRadiiSquared is cached for the surface normal
	oneOverRadiiSquared mgl64.Vec3
}

func NewEllipsoid(name string, radii mgl64.Vec3) *Planet {
	return &Planet{
		name:  name,
		radii: radii,
		oneOverRadiiSquared: mgl64.Vec3{
			1 / (radii[0] * radii[0]),
			1 / (radii[1] * radii[1]),
			1 / (radii[2] * radii[2]),
		},
	}
}

// Earth returns the WGS84 ellipsoid.
func Earth() *Planet {
	return NewEllipsoid("Earth", mgl64.Vec3{6378137.0, 6378137.0, 6356752.314245})
}

func (p *Planet) Name() string       { return p.name }
func (p *Planet) Radii() mgl64.Vec3  { return p.radii }
func (p *Planet) MaxRadius() float64 { return math.Max(p.radii[0], math.Max(p.radii[1], p.radii[2])) }

// GeodeticSurfaceNormal returns the unit normal at g.
func (p *Planet) GeodeticSurfaceNormal(g Geodetic2D) mgl64.Vec3 {
	lat := mgl64.DegToRad(g.Latitude)
	lon := mgl64.DegToRad(g.Longitude)
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		cosLat * math.Cos(lon),
		cosLat * math.Sin(lon),
		math.Sin(lat),
	}
}

// ToCartesian converts a geodetic position to planet centered coordinates.
func (p *Planet) ToCartesian(g Geodetic3D) mgl64.Vec3 {
	n := p.GeodeticSurfaceNormal(g.Geodetic2D)
	k := mgl64.Vec3{
		p.radii[0] * p.radii[0] * n[0],
		p.radii[1] * p.radii[1] * n[1],
		p.radii[2] * p.radii[2] * n[2],
	}
	gamma := math.Sqrt(k[0]*n[0] + k[1]*n[1] + k[2]*n[2])
	surface := k.Mul(1 / gamma)
	return surface.Add(n.Mul(g.Height))
}
