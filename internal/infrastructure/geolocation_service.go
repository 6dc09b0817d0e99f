// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
)

// ip-api.com compatible response
type geolocationResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type geolocationService struct {
	http http.Client
	url  string
}

// NewGeolocationService locates the host by its public IP address.
func NewGeolocationService(url string, timeout time.Duration) application.Geolocator {
	return &geolocationService{
		http: http.Client{Timeout: timeout},
		url:  url,
	}
}

func (g *geolocationService) CurrentPosition(ctx context.Context) (application.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return application.Location{}, fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return application.Location{}, fmt.Errorf("failed to fetch geolocation: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return application.Location{}, fmt.Errorf("unexpected HTTP response: %s", resp.Status)
	}

	var data geolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return application.Location{}, fmt.Errorf("failed to decode geolocation: %w", err)
	}

	if data.Status != "" && data.Status != "success" {
		return application.Location{}, fmt.Errorf("geolocation lookup failed: %s", data.Message)
	}

	return application.Location{
		Latitude:  data.Lat,
		Longitude: data.Lon,
	}, nil
}
