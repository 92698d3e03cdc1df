package geo

import (
	"math"
	"testing"

	"food-rescue-service/internal/domain"
)

func TestDistanceOneDegreeOfLongitudeAtEquator(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}

	got, err := Distance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One degree of arc on a 3958.8-mile sphere.
	want := 3958.8 * math.Pi / 180
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("expected %.4f miles, got %.4f", want, got)
	}
}

func TestDistanceSamePointIsZero(t *testing.T) {
	p := domain.Coordinates{Lat: 33.4484, Lon: -112.074}

	got, err := Distance(p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected zero distance, got %v", got)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 33.4484, Lon: -112.074}
	b := domain.Coordinates{Lat: 33.5092, Lon: -111.978}

	ab, err := Distance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceRejectsInvalidCoordinates(t *testing.T) {
	valid := domain.Coordinates{Lat: 0, Lon: 0}

	cases := []struct {
		name string
		bad  domain.Coordinates
	}{
		{"lat too high", domain.Coordinates{Lat: 90.01, Lon: 0}},
		{"lat too low", domain.Coordinates{Lat: -90.01, Lon: 0}},
		{"lon too high", domain.Coordinates{Lat: 0, Lon: 180.01}},
		{"lon too low", domain.Coordinates{Lat: 0, Lon: -180.01}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Distance(valid, tc.bad); err == nil {
				t.Fatal("expected error for invalid coordinate")
			}
			if _, err := Distance(tc.bad, valid); err == nil {
				t.Fatal("expected error for invalid coordinate")
			}
		})
	}
}

func TestTravelTimeSamePointIsMinimum(t *testing.T) {
	p := domain.Coordinates{Lat: 10, Lon: 10}

	got, err := TravelTime(p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected 5 minute minimum, got %d", got)
	}
}

func TestTravelTimeIncludesBuffer(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}

	got, err := TravelTime(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ~69.09 miles at 25 mph is ~165.8 minutes of driving, rounded,
	// plus the 5-minute buffer.
	if got != 171 {
		t.Fatalf("expected 171 minutes, got %d", got)
	}
}
