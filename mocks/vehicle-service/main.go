// Command vehicle-service is a stand-in for the external vehicle information
// service, used for local runs of the insurance service.
//
//	VEHICLE_MOCK_ADDR=:8081 VEHICLE_MOCK_USERNAME=svc VEHICLE_MOCK_PASSWORD=secret go run .
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

type vehicle struct {
	RegistrationNumber string `json:"registrationNumber"`
	VIN                string `json:"vin"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	Color              string `json:"color"`
}

var vehicles = map[string]vehicle{
	"ABC123": {RegistrationNumber: "ABC123", VIN: "YV1DZ8256C2271234", Make: "Volvo", Model: "XC60", Year: 2020, Color: "Black"},
	"XYZ789": {RegistrationNumber: "XYZ789", VIN: "WVWZZZ1JZXW000001", Make: "Volkswagen", Model: "Golf", Year: 2018, Color: "Silver"},
	"SAAB93": {RegistrationNumber: "SAAB93", VIN: "YS3FD49Y881012345", Make: "Saab", Model: "9-3", Year: 2008, Color: "Blue"},
}

func main() {
	addr := getenv("VEHICLE_MOCK_ADDR", ":8081")
	username := os.Getenv("VEHICLE_MOCK_USERNAME")
	password := os.Getenv("VEHICLE_MOCK_PASSWORD")
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/vehicles/{registrationNumber}", func(w http.ResponseWriter, r *http.Request) {
		if username != "" {
			u, p, ok := r.BasicAuth()
			if !ok || u != username || p != password {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		reg := strings.ToUpper(r.PathValue("registrationNumber"))
		v, ok := vehicles[reg]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("starting mock vehicle service", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Error("mock vehicle service stopped", "error", err)
		os.Exit(1)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
