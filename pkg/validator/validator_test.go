package validator

import "testing"

type point struct {
	Lat *float64 `validate:"required,lat"`
	Lng *float64 `validate:"required,lng"`
}

func f64(v float64) *float64 { return &v }

func TestValidateStruct_Coordinates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      point
		wantErr bool
	}{
		{"equator_meridian", point{Lat: f64(0), Lng: f64(0)}, false},
		{"bounds", point{Lat: f64(-90), Lng: f64(180)}, false},
		{"lat_out_of_range", point{Lat: f64(90.5), Lng: f64(10)}, true},
		{"lng_out_of_range", point{Lat: f64(10), Lng: f64(-181)}, true},
		{"missing_lat", point{Lng: f64(10)}, true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("wantErr=%v got=%v", c.wantErr, err)
			}
		})
	}
}
