// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"placenear/spatial"
)

// Server exposes the geocoding operations over HTTP.
type Server struct {
	provider Provider
}

// NewServer creates a Server backed by the given provider.
func NewServer(provider Provider) *Server {
	return &Server{provider: provider}
}

// Run registers the routes and serves on addr.
func (s *Server) Run(addr string) error {
	r := gin.Default()
	s.Register(r)

	return r.Run(addr)
}

// Register mounts the API routes on an existing engine.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/healthz", s.health)
	r.GET("/api/geocode", s.geocode)
	r.GET("/api/nearby", s.nearby)
	r.GET("/api/distance", s.distance)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) geocode(ctx *gin.Context) {
	address := ctx.Query("address")
	if address == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "address query parameter is required"})

		return
	}

	results, err := s.provider.Geocode(ctx.Request.Context(), address)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	// No match is a valid outcome, not an error.
	ctx.JSON(http.StatusOK, results)
}

type nearbyResponse struct {
	Origin spatial.Point `json:"origin"`
	Places []rankedPlace `json:"places"`
}

type rankedPlace struct {
	Name           string        `json:"name"`
	Types          []string      `json:"types"`
	Point          spatial.Point `json:"point"`
	DistanceMeters float64       `json:"distance_meters"`
}

func (s *Server) nearby(ctx *gin.Context) {
	origin, ok := parseLatLngParams(ctx)
	if !ok {
		return
	}

	radius, err := strconv.ParseFloat(ctx.DefaultQuery("radius", "500"), 64)
	if err != nil || radius <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive number of meters"})

		return
	}

	ranked, err := FindNearbyRanked(ctx.Request.Context(), s.provider, origin, radius, ctx.Query("type"))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	resp := nearbyResponse{Origin: origin, Places: make([]rankedPlace, 0, len(ranked))}

	for _, r := range ranked {
		resp.Places = append(resp.Places, rankedPlace{
			Name:           r.Candidate.Name,
			Types:          r.Candidate.Types,
			Point:          r.Candidate.Point,
			DistanceMeters: r.DistanceKm * spatial.MetersPerKilometer,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) distance(ctx *gin.Context) {
	from, ok := parsePointParam(ctx, "from")
	if !ok {
		return
	}

	to, ok := parsePointParam(ctx, "to")
	if !ok {
		return
	}

	km := from.HaversineKm(to)

	ctx.JSON(http.StatusOK, gin.H{
		"from":            from,
		"to":              to,
		"distance_km":     km,
		"distance_meters": km * spatial.MetersPerKilometer,
	})
}

func parseLatLngParams(ctx *gin.Context) (spatial.Point, bool) {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(ctx.Query("lng"), 64)

	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters must be valid coordinates"})

		return spatial.Point{}, false
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}

func parsePointParam(ctx *gin.Context, name string) (spatial.Point, bool) {
	parts := strings.Split(ctx.Query(name), ",")
	if len(parts) != 2 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be \"lat,lng\""})

		return spatial.Point{}, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)

	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be \"lat,lng\""})

		return spatial.Point{}, false
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}
